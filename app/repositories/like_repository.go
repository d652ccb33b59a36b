package repositories

import (
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// BadgerLikeRepository implements LikeRepository using BadgerDB. Each like
// is a single key like:<postID>:<userID>, so the key space itself gives the
// relation set semantics.
type BadgerLikeRepository struct {
	db *badger.DB
}

// NewBadgerLikeRepository creates a new BadgerLikeRepository
func NewBadgerLikeRepository(db *badger.DB) *BadgerLikeRepository {
	return &BadgerLikeRepository{db: db}
}

func likeKey(postID, userID int) []byte {
	return []byte(fmt.Sprintf("%s%d:%d", LikeKeyPrefix, postID, userID))
}

func likePrefix(postID int) []byte {
	return []byte(fmt.Sprintf("%s%d:", LikeKeyPrefix, postID))
}

// Add records that the user likes the post. Adding twice is a no-op.
func (r *BadgerLikeRepository) Add(postID, userID int) error {
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(likeKey(postID, userID), []byte{1})
	})
}

// Remove withdraws the user's like. Removing an absent like is a no-op.
func (r *BadgerLikeRepository) Remove(postID, userID int) error {
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(likeKey(postID, userID))
	})
}

// Has reports whether the user likes the post
func (r *BadgerLikeRepository) Has(postID, userID int) (bool, error) {
	var has bool
	err := r.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(likeKey(postID, userID))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		has = true
		return nil
	})
	return has, err
}

// Count returns the number of users who like the post
func (r *BadgerLikeRepository) Count(postID int) (int, error) {
	count := 0
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := likePrefix(postID)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}

// DeleteByPost removes every like on a post.
func (r *BadgerLikeRepository) DeleteByPost(postID int) error {
	var keys [][]byte
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := likePrefix(postID)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		return nil
	})
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		for _, key := range keys {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
}
