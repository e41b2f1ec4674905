package storetest

import (
	"github.com/jamesrr39/users-cluster-app/userstore/dal"
	"github.com/jamesrr39/users-cluster-app/userstore/domain"
)

// NewSeededStore creates a store with the default seed users (IDs 1, 2 and 3)
func NewSeededStore() *dal.UserStore {
	return dal.NewSeededUserStore()
}

// NewStoreWithUsers creates a store holding exactly the given users, in the given order.
// Useful for setting up duplicates or an unsorted store.
func NewStoreWithUsers(users ...*domain.User) *dal.UserStore {
	return dal.NewUserStore(users)
}

// IDs returns the IDs of the users, in order
func IDs(users []*domain.User) []int64 {
	ids := []int64{}
	for _, user := range users {
		ids = append(ids, user.ID)
	}
	return ids
}

// Names returns the names of the users, in order
func Names(users []*domain.User) []string {
	names := []string{}
	for _, user := range users {
		names = append(names, user.Name)
	}
	return names
}
