package repositories

import (
	"fmt"
	"strconv"
	"strings"

	"inkwell/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerUserRepository implements UserRepository using BadgerDB.
// Username and email uniqueness is enforced through index keys written in
// the same transaction as the user record.
type BadgerUserRepository struct {
	db *badger.DB
}

// NewBadgerUserRepository creates a new BadgerUserRepository
func NewBadgerUserRepository(db *badger.DB) *BadgerUserRepository {
	return &BadgerUserRepository{db: db}
}

// Create creates a new user, rejecting duplicate usernames and emails
func (r *BadgerUserRepository) Create(user *models.User) error {
	return r.db.Update(func(txn *badger.Txn) error {
		usernameKey := []byte(UsernameIndexPrefix + normalize(user.Username))
		if _, err := txn.Get(usernameKey); err == nil {
			return ErrUsernameTaken
		} else if err != badger.ErrKeyNotFound {
			return err
		}

		emailKey := []byte(EmailIndexPrefix + normalize(user.Email))
		if _, err := txn.Get(emailKey); err == nil {
			return ErrEmailTaken
		} else if err != badger.ErrKeyNotFound {
			return err
		}

		id, err := getNextID(txn, UserSeqKey)
		if err != nil {
			return err
		}
		user.ID = id

		data, err := marshalEntity(user)
		if err != nil {
			return err
		}

		key := []byte(fmt.Sprintf("%s%d", UserKeyPrefix, user.ID))
		if err := txn.Set(key, data); err != nil {
			return err
		}

		idBytes := []byte(strconv.Itoa(user.ID))
		if err := txn.Set(usernameKey, idBytes); err != nil {
			return err
		}
		return txn.Set(emailKey, idBytes)
	})
}

// GetByID retrieves a user by ID
func (r *BadgerUserRepository) GetByID(id int) (*models.User, error) {
	var user models.User

	err := r.db.View(func(txn *badger.Txn) error {
		key := []byte(fmt.Sprintf("%s%d", UserKeyPrefix, id))
		item, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return unmarshalEntity(val, &user)
		})
	})

	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByUsername retrieves a user through the username index
func (r *BadgerUserRepository) GetByUsername(username string) (*models.User, error) {
	return r.getByIndex(UsernameIndexPrefix + normalize(username))
}

// GetByEmail retrieves a user through the email index
func (r *BadgerUserRepository) GetByEmail(email string) (*models.User, error) {
	return r.getByIndex(EmailIndexPrefix + normalize(email))
}

func (r *BadgerUserRepository) getByIndex(indexKey string) (*models.User, error) {
	var id int
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(indexKey))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			id, err = strconv.Atoi(string(val))
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(id)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
