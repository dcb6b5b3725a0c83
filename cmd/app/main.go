package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/akhilnair92/hosteldesk/api"
	"github.com/akhilnair92/hosteldesk/config"
	"github.com/akhilnair92/hosteldesk/internal/bootstrap"
	"github.com/akhilnair92/hosteldesk/internal/cache"
	"github.com/akhilnair92/hosteldesk/internal/kafka"
	"github.com/akhilnair92/hosteldesk/internal/repository"
	"github.com/akhilnair92/hosteldesk/internal/service/booking"
	"github.com/akhilnair92/hosteldesk/internal/service/payment"
	"github.com/akhilnair92/hosteldesk/internal/service/rooms"
	"github.com/akhilnair92/hosteldesk/internal/service/students"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	if err := repository.EnsureSchema(ctx, pool); err != nil {
		log.Fatalf("ensure schema: %v", err)
	}
	if err := repository.Seed(ctx, pool); err != nil {
		log.Fatalf("seed database: %v", err)
	}

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Cache.RoomsTTLSeconds)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	studentRepo := repository.NewStudentRepository(pool)
	roomRepo := repository.NewRoomRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	paymentRepo := repository.NewPaymentRepository(pool)

	studentService := students.NewStudentService(studentRepo, producer, cfg.Kafka.StayTopic)
	roomService := rooms.NewRoomService(roomRepo, redisCache, producer, cfg.Kafka.StayTopic)
	bookingService := booking.NewBookingService(bookingRepo, roomRepo, redisCache, producer, cfg.Kafka.StayTopic,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic))
	paymentService := payment.NewPaymentService(paymentRepo, bookingRepo, producer, cfg.Kafka.StayTopic)

	handlers := bootstrap.Handlers{
		Students: api.NewStudentHandler(studentService),
		Rooms:    api.NewRoomHandler(roomService),
		Bookings: api.NewBookingHandler(bookingService),
		Payments: api.NewPaymentHandler(paymentService),
	}

	if err := bootstrap.Run(ctx, cfg, handlers); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
