package dal

import (
	"encoding/json"

	"github.com/jamesrr39/users-cluster-app/userstore/domain"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// UserStore holds the users for a single process. It is never persisted, and every replica owns its own.
type UserStore struct {
	users []*domain.User
}

// NewUserStore creates a store holding a copy of the given users, in the given order
func NewUserStore(users []*domain.User) *UserStore {
	return &UserStore{copyUsers(users)}
}

// NewSeededUserStore creates a store holding the default seed users
func NewSeededUserStore() *UserStore {
	return NewUserStore(DefaultSeedUsers())
}

// DefaultSeedUsers returns the users every replica starts with
func DefaultSeedUsers() []*domain.User {
	return []*domain.User{
		domain.NewUser(1, "John Doe", "john.doe@example.com"),
		domain.NewUser(2, "Jane Doe", "jane.doe@example.com"),
		domain.NewUser(3, "Max Mustermann", "max.mustermann@example.com"),
	}
}

// ListUsers returns a copy of the users in the store. Changing the returned users does not change the store.
func (s *UserStore) ListUsers() []*domain.User {
	return copyUsers(s.users)
}

func copyUsers(users []*domain.User) []*domain.User {
	copied := make([]*domain.User, len(users))
	for i, user := range users {
		copied[i] = domain.NewUser(user.ID, user.Name, user.Email)
	}
	return copied
}

// LoadSeedUsers reads a JSON array of users from a file
func LoadSeedUsers(fs afero.Fs, path string) ([]*domain.User, error) {
	file, err := fs.Open(path)
	if nil != err {
		return nil, errors.Wrapf(err, "couldn't open seed file %q", path)
	}
	defer file.Close()

	var users []*domain.User
	err = json.NewDecoder(file).Decode(&users)
	if nil != err {
		return nil, errors.Wrapf(err, "couldn't decode seed file %q", path)
	}

	for i, user := range users {
		if nil == user {
			return nil, errors.Errorf("seed file %q has a null user at index %d", path, i)
		}
	}

	return users, nil
}
