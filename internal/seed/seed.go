// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"hearth/internal/models"
	"hearth/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
	// SkipBcrypt stores a plaintext marker instead of hashing; dev fast mode only.
	SkipBcrypt bool
}

// Seed populates the database with test data: users, posts, threaded
// comments, and likes. Likes go through the repository so every one carries
// its paired karma transaction, which keeps the seeded leaderboard honest.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Seeding database with %d users and %d posts...", opts.NumUsers, opts.NumPosts)
	gofakeit.Seed(time.Now().UnixNano())

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	users, err := createUsers(db, opts)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("created %d users", len(users))

	posts, err := createPosts(db, users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("created %d posts", len(posts))

	comments, err := createCommentThreads(db, users, posts)
	if err != nil {
		return fmt.Errorf("failed to create comments: %w", err)
	}
	log.Printf("created %d comments", len(comments))

	likes, err := createLikes(db, users, posts, comments)
	if err != nil {
		return fmt.Errorf("failed to create likes: %w", err)
	}
	log.Printf("created %d likes", likes)

	log.Println("Seeding complete")
	return nil
}

func createUsers(db *gorm.DB, opts Options) ([]*models.User, error) {
	password := "password123"
	stored := password
	if !opts.SkipBcrypt {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		stored = string(hash)
	}

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user := &models.User{
			Username: fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999)),
			Email:    gofakeit.Email(),
			Password: stored,
		}
		if err := db.Create(user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func createPosts(db *gorm.DB, users []*models.User, count int) ([]*models.Post, error) {
	if len(users) == 0 {
		return nil, nil
	}

	posts := make([]*models.Post, 0, count)
	for i := 0; i < count; i++ {
		author := users[rand.Intn(len(users))]
		post := &models.Post{
			Body:      gofakeit.Paragraph(1, 3, 8, "\n"),
			UserID:    author.ID,
			CreatedAt: spreadBack(72 * time.Hour),
		}
		if err := db.Create(post).Error; err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// createCommentThreads builds, per post, a few top-level comments and a
// shorter tail of replies to random earlier comments on the same post.
func createCommentThreads(db *gorm.DB, users []*models.User, posts []*models.Post) ([]*models.Comment, error) {
	var all []*models.Comment
	for _, post := range posts {
		var onPost []*models.Comment

		topLevel := rand.Intn(4)
		for i := 0; i < topLevel; i++ {
			c, err := createComment(db, users, post, nil)
			if err != nil {
				return nil, err
			}
			onPost = append(onPost, c)
		}

		replies := rand.Intn(3)
		for i := 0; i < replies && len(onPost) > 0; i++ {
			parent := onPost[rand.Intn(len(onPost))]
			c, err := createComment(db, users, post, &parent.ID)
			if err != nil {
				return nil, err
			}
			onPost = append(onPost, c)
		}

		all = append(all, onPost...)
	}
	return all, nil
}

func createComment(db *gorm.DB, users []*models.User, post *models.Post, parentID *uint) (*models.Comment, error) {
	comment := &models.Comment{
		PostID:    post.ID,
		ParentID:  parentID,
		UserID:    users[rand.Intn(len(users))].ID,
		Body:      gofakeit.Sentence(rand.Intn(12) + 3),
		CreatedAt: spreadBack(48 * time.Hour),
	}
	if err := db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// createLikes sprinkles likes across posts and comments. Duplicates from the
// random picks are expected and skipped; the unique indexes reject them.
func createLikes(db *gorm.DB, users []*models.User, posts []*models.Post, comments []*models.Comment) (int, error) {
	likeRepo := repository.NewLikeRepository(db)
	ctx := context.Background()
	created := 0

	attempt := func(userID uint, target models.LikeTarget, authorID uint) error {
		if userID == authorID {
			return nil
		}
		_, err := likeRepo.Apply(ctx, userID, target, authorID)
		if err != nil {
			var appErr *models.AppError
			if errors.As(err, &appErr) && appErr.Code == models.CodeDuplicateLike {
				return nil
			}
			return err
		}
		created++
		return nil
	}

	for _, post := range posts {
		n := rand.Intn(len(users) + 1)
		for i := 0; i < n; i++ {
			liker := users[rand.Intn(len(users))]
			if err := attempt(liker.ID, models.PostTarget(post.ID), post.UserID); err != nil {
				return created, err
			}
		}
	}

	for _, comment := range comments {
		if rand.Intn(3) != 0 {
			continue
		}
		liker := users[rand.Intn(len(users))]
		if err := attempt(liker.ID, models.CommentTarget(comment.ID), comment.UserID); err != nil {
			return created, err
		}
	}

	return created, nil
}

// spreadBack returns a time uniformly distributed within the past span.
func spreadBack(span time.Duration) time.Time {
	return time.Now().Add(-time.Duration(rand.Int63n(int64(span))))
}

func clearData(db *gorm.DB) error {
	// Delete in FK order: likes and karma first, then comments, posts, users.
	for _, model := range []interface{}{
		&models.KarmaTransaction{},
		&models.Like{},
		&models.Comment{},
		&models.Post{},
	} {
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return err
		}
	}
	return db.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(&models.User{}).Error
}
