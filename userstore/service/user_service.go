// Package service computes the results of user operations from a snapshot of a store.
//
// None of the functions write back to the store. Each call starts from the store's current
// users and returns the full resulting list, so an insert, update or delete is only visible in
// the list that it returns.
package service

import (
	"sort"

	"github.com/jamesrr39/users-cluster-app/userstore/domain"
)

// UserLister is the read access the service needs to a store
type UserLister interface {
	ListUsers() []*domain.User
}

// GetUserByID returns all the users with the given ID. More than one is returned if the store has duplicates.
func GetUserByID(store UserLister, id int64) []*domain.User {
	return sortUsers(filterUsers(store.ListUsers(), func(user *domain.User) bool {
		return user.ID == id
	}))
}

// InsertUser returns the store's users with newUser added. Existing users with the same ID are kept.
func InsertUser(store UserLister, newUser *domain.User) []*domain.User {
	users := filterUsers(store.ListUsers(), func(user *domain.User) bool {
		return true
	})

	return sortUsers(append(users, newUser))
}

// UpdateUser returns the store's users with every user with the same ID replaced by a single updatedUser
func UpdateUser(store UserLister, updatedUser *domain.User) []*domain.User {
	users := filterUsers(store.ListUsers(), func(user *domain.User) bool {
		return user.ID != updatedUser.ID
	})

	return sortUsers(append(users, updatedUser))
}

// DeleteUserByID returns the store's users without any user with the given ID
func DeleteUserByID(store UserLister, id int64) []*domain.User {
	return sortUsers(filterUsers(store.ListUsers(), func(user *domain.User) bool {
		return user.ID != id
	}))
}

// filterUsers always returns a new slice, so the slice a store hands out is never appended to or sorted
func filterUsers(users []*domain.User, keep func(user *domain.User) bool) []*domain.User {
	filtered := []*domain.User{}
	for _, user := range users {
		if keep(user) {
			filtered = append(filtered, user)
		}
	}
	return filtered
}

// sortUsers sorts in place by ID, ascending. Users with equal IDs keep their relative order.
func sortUsers(users []*domain.User) []*domain.User {
	sort.SliceStable(users, func(i, j int) bool {
		return users[i].ID < users[j].ID
	})
	return users
}
