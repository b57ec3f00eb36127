package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"clubsite/internal/config"
	"clubsite/internal/notify"
	"clubsite/internal/queue"
	"clubsite/internal/records"
	"clubsite/internal/store"
)

// Worker consumes queue messages for new public submissions and emails the
// club admins about them.
func main() {
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("shutdown signal received")
		cancel()
	}()

	db, err := store.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer db.Close()

	redisClient := store.NewRedis(cfg.RedisAddr)

	var q queue.Queue
	if cfg.QueueBackend == "memory" {
		q = queue.NewInMemory(64)
	} else {
		q = queue.NewRedisQueue(redisClient.Client, "clubsite:notify")
	}

	if cfg.ResendAPIKey == "" || cfg.NotifyTo == "" {
		log.Fatal("RESEND_API_KEY and NOTIFY_TO must be set for the notification worker")
	}
	sender := notify.NewSender(cfg.ResendAPIKey, cfg.NotifyFrom, cfg.NotifyTo)

	messageRepo := records.NewMessageRepo(db.Client)
	membershipRepo := records.NewMembershipRepo(db.Client)

	messages, err := q.Consume(ctx)
	if err != nil {
		log.Fatalf("queue consume init failed: %v", err)
	}

	log.Println("worker started, waiting for messages...")
	for msg := range messages {
		id := string(msg.Body)

		switch msg.Type {
		case queue.TypeContactMessage:
			m, err := messageRepo.Get(ctx, id)
			if err != nil {
				log.Printf("fetch message %s failed: %v", id, err)
				continue
			}
			if err := sender.ContactMessage(ctx, *m); err != nil {
				log.Printf("notify for message %s failed: %v", id, err)
			}

		case queue.TypeMembership:
			m, err := membershipRepo.Get(ctx, id)
			if err != nil {
				log.Printf("fetch membership %s failed: %v", id, err)
				continue
			}
			if err := sender.MembershipApplication(ctx, *m); err != nil {
				log.Printf("notify for membership %s failed: %v", id, err)
			}

		default:
			continue
		}
	}

	log.Println("worker stopped")
}
