// Command seed fills a development database with fake users, posts, follows
// and likes, so the feeds have something to show right after a fresh
// migration. It goes through the crud services, so everything it writes
// passes the same validations as real traffic.
package main

import (
	"flag"
	"fmt"
	"math/rand"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"wtfSocial/crud"
	"wtfSocial/domain"
)

func main() {
	dsn := flag.String("dsn", "host=localhost port=5432 user=postgres dbname=wtf_social sslmode=disable", "postgres connection string")
	users := flag.Int("users", 10, "number of users to create")
	posts := flag.Int("posts", 80, "number of posts to create")
	flag.Parse()

	db, err := gorm.Open(postgres.Open(*dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	must(err)

	services, err := crud.NewServices(
		db,
		crud.WithUser("secret-hmac-key", "secret-random-string"),
		crud.WithPost(),
		crud.WithFollow(),
		crud.WithLike(),
	)
	must(err)

	accounts := make([]*domain.User, 0, *users)
	for i := 0; i < *users; i++ {
		user := &domain.User{
			Username: fmt.Sprintf("%s%d", gofakeit.Username(), i),
			Email:    gofakeit.Email(),
			Password: gofakeit.Password(true, true, true, false, false, 12),
		}
		must(services.User.Create(user))
		accounts = append(accounts, user)
	}
	fmt.Printf("created %d users\n", len(accounts))

	for i := 0; i < *posts; i++ {
		author := accounts[rand.Intn(len(accounts))]
		body := gofakeit.Sentence(rand.Intn(20) + 3)
		// Long sentences would fail the 280-rune post validation.
		if runes := []rune(body); len(runes) > 280 {
			body = string(runes[:280])
		}
		post := &domain.Post{
			UserID: author.ID,
			Body:   body,
		}
		must(services.Post.Create(post))

		// A few random likes per post. The like service is idempotent, so
		// duplicate picks don't matter.
		for j := 0; j < rand.Intn(4); j++ {
			fan := accounts[rand.Intn(len(accounts))]
			must(services.Like.Create(&domain.Like{UserID: fan.ID, PostID: post.ID}))
		}
	}
	fmt.Printf("created %d posts\n", *posts)

	follows := 0
	for _, follower := range accounts {
		for j := 0; j < rand.Intn(4); j++ {
			followed := accounts[rand.Intn(len(accounts))]
			follow := &domain.Follow{FollowerID: follower.ID, FollowedID: followed.ID}
			// Self-follows and duplicates are rejected by the service; skip them.
			if err := services.Follow.Create(follow); err == nil {
				follows++
			}
		}
	}
	fmt.Printf("created %d follows\n", follows)
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
