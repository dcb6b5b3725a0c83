package booking

import (
	"context"
	"testing"
	"time"

	"github.com/akhilnair92/hosteldesk/internal/domain"
	"github.com/akhilnair92/hosteldesk/internal/kafka"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) List(ctx context.Context) ([]domain.Booking, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) Checkout(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

type MockRoomRepository struct {
	mock.Mock
}

func (m *MockRoomRepository) List(ctx context.Context) ([]domain.Room, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Room), args.Error(1)
}

func (m *MockRoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

func (m *MockRoomRepository) Create(ctx context.Context, room *domain.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}

func (m *MockRoomRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) InvalidateRooms(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

func TestBookingService_Create_Success(t *testing.T) {
	mockBookingRepo := &MockBookingRepository{}
	mockRoomRepo := &MockRoomRepository{}
	mockCache := &MockCache{}
	mockProducer := &MockProducer{}

	service := NewBookingService(mockBookingRepo, mockRoomRepo, mockCache, mockProducer, "stay_events")

	ctx := context.Background()
	from := "2026-09-01"
	to := "2026-12-01"
	input := CreateBookingInput{StudentID: 1, RoomID: 3, FromDate: &from, ToDate: &to}

	mockRoomRepo.On("GetByID", ctx, int64(3)).Return(&domain.Room{ID: 3, Number: "201", Type: "Single", Capacity: 1, Available: true}, nil).Once()
	mockBookingRepo.On("Create", ctx, mock.AnythingOfType("*domain.Booking")).Run(func(args mock.Arguments) {
		b := args.Get(1).(*domain.Booking)
		b.ID = 7
		b.CreatedAt = time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	}).Return(nil).Once()
	mockCache.On("InvalidateRooms", ctx).Return(nil).Once()
	mockProducer.On("Publish", ctx, "stay_events", mock.Anything, mock.Anything).Return(nil).Once()

	booking, err := service.Create(ctx, input)

	assert.NoError(t, err)
	assert.NotNil(t, booking)
	assert.Equal(t, int64(7), booking.ID)
	assert.Equal(t, int64(1), booking.StudentID)
	assert.Equal(t, int64(3), booking.RoomID)
	assert.Equal(t, &from, booking.FromDate)
	assert.Equal(t, &to, booking.ToDate)

	mockRoomRepo.AssertExpectations(t)
	mockBookingRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
	mockProducer.AssertExpectations(t)
}

func TestBookingService_Create_ValidationErrors(t *testing.T) {
	service := NewBookingService(&MockBookingRepository{}, &MockRoomRepository{}, nil, nil, "")

	ctx := context.Background()

	testCases := []struct {
		name  string
		input CreateBookingInput
	}{
		{name: "missing student_id", input: CreateBookingInput{RoomID: 3}},
		{name: "missing room_id", input: CreateBookingInput{StudentID: 1}},
		{name: "both missing", input: CreateBookingInput{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			booking, err := service.Create(ctx, tc.input)
			assert.Nil(t, booking)
			assert.EqualError(t, err, "student_id and room_id required")
			assert.True(t, domain.IsValidation(err))
		})
	}
}

func TestBookingService_Create_RoomNotFound(t *testing.T) {
	mockBookingRepo := &MockBookingRepository{}
	mockRoomRepo := &MockRoomRepository{}

	service := NewBookingService(mockBookingRepo, mockRoomRepo, nil, nil, "")

	ctx := context.Background()
	mockRoomRepo.On("GetByID", ctx, int64(42)).Return(nil, domain.NewNotFound("room", 42)).Once()

	booking, err := service.Create(ctx, CreateBookingInput{StudentID: 1, RoomID: 42})

	assert.Nil(t, booking)
	assert.True(t, domain.IsNotFound(err))
	mockBookingRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	mockRoomRepo.AssertExpectations(t)
}

func TestBookingService_Create_RoomUnavailable(t *testing.T) {
	mockBookingRepo := &MockBookingRepository{}
	mockRoomRepo := &MockRoomRepository{}

	service := NewBookingService(mockBookingRepo, mockRoomRepo, nil, nil, "")

	ctx := context.Background()
	mockRoomRepo.On("GetByID", ctx, int64(3)).Return(&domain.Room{ID: 3, Number: "201", Available: false}, nil).Once()

	booking, err := service.Create(ctx, CreateBookingInput{StudentID: 1, RoomID: 3})

	assert.Nil(t, booking)
	assert.ErrorIs(t, err, domain.ErrRoomUnavailable)
	assert.False(t, domain.IsNotFound(err))
	mockBookingRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	mockRoomRepo.AssertExpectations(t)
}

// The availability check inside the repository transaction can still lose a
// race after the service-level check passed; the conflict must surface.
func TestBookingService_Create_RaceLosesInRepository(t *testing.T) {
	mockBookingRepo := &MockBookingRepository{}
	mockRoomRepo := &MockRoomRepository{}

	service := NewBookingService(mockBookingRepo, mockRoomRepo, nil, nil, "")

	ctx := context.Background()
	mockRoomRepo.On("GetByID", ctx, int64(3)).Return(&domain.Room{ID: 3, Number: "201", Available: true}, nil).Once()
	mockBookingRepo.On("Create", ctx, mock.AnythingOfType("*domain.Booking")).Return(domain.ErrRoomUnavailable).Once()

	booking, err := service.Create(ctx, CreateBookingInput{StudentID: 1, RoomID: 3})

	assert.Nil(t, booking)
	assert.ErrorIs(t, err, domain.ErrRoomUnavailable)
	mockBookingRepo.AssertExpectations(t)
}

// The student id is stored as given; no student lookup happens anywhere in
// the create path.
func TestBookingService_Create_StudentNotVerified(t *testing.T) {
	mockBookingRepo := &MockBookingRepository{}
	mockRoomRepo := &MockRoomRepository{}

	service := NewBookingService(mockBookingRepo, mockRoomRepo, nil, nil, "")

	ctx := context.Background()
	mockRoomRepo.On("GetByID", ctx, int64(3)).Return(&domain.Room{ID: 3, Number: "201", Available: true}, nil).Once()
	mockBookingRepo.On("Create", ctx, mock.AnythingOfType("*domain.Booking")).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Booking).ID = 8
	}).Return(nil).Once()

	booking, err := service.Create(ctx, CreateBookingInput{StudentID: 99999, RoomID: 3})

	assert.NoError(t, err)
	assert.Equal(t, int64(99999), booking.StudentID)
	mockBookingRepo.AssertExpectations(t)
}

func TestBookingService_Checkout_Success(t *testing.T) {
	mockBookingRepo := &MockBookingRepository{}
	mockCache := &MockCache{}
	mockProducer := &MockProducer{}

	service := NewBookingService(mockBookingRepo, &MockRoomRepository{}, mockCache, mockProducer, "stay_events",
		WithNotificationsTopic("stay_notifications"))

	ctx := context.Background()
	mockBookingRepo.On("Checkout", ctx, int64(7)).Return(&domain.Booking{ID: 7, StudentID: 1, RoomID: 3}, nil).Once()
	mockCache.On("InvalidateRooms", ctx).Return(nil).Once()
	mockProducer.On("Publish", ctx, "stay_events", mock.Anything, mock.Anything).Return(nil).Once()
	mockProducer.On("Publish", ctx, "stay_notifications", mock.Anything, mock.Anything).Return(nil).Once()

	booking, err := service.Checkout(ctx, 7)

	assert.NoError(t, err)
	assert.Equal(t, int64(7), booking.ID)
	mockBookingRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
	mockProducer.AssertExpectations(t)
}

func TestBookingService_Checkout_NotFound(t *testing.T) {
	mockBookingRepo := &MockBookingRepository{}
	mockProducer := &MockProducer{}

	service := NewBookingService(mockBookingRepo, &MockRoomRepository{}, nil, mockProducer, "stay_events")

	ctx := context.Background()
	mockBookingRepo.On("Checkout", ctx, int64(404)).Return(nil, domain.NewNotFound("booking", 404)).Once()

	booking, err := service.Checkout(ctx, 404)

	assert.Nil(t, booking)
	assert.True(t, domain.IsNotFound(err))
	mockProducer.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// Event publishing is best effort: a broken producer never fails the request.
func TestBookingService_Create_PublishFailureIgnored(t *testing.T) {
	mockBookingRepo := &MockBookingRepository{}
	mockRoomRepo := &MockRoomRepository{}
	mockProducer := &MockProducer{}

	service := NewBookingService(mockBookingRepo, mockRoomRepo, nil, mockProducer, "stay_events")

	ctx := context.Background()
	mockRoomRepo.On("GetByID", ctx, int64(3)).Return(&domain.Room{ID: 3, Available: true}, nil).Once()
	mockBookingRepo.On("Create", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil).Once()
	mockProducer.On("Publish", ctx, "stay_events", mock.Anything, mock.Anything).Return(assert.AnError).Once()

	booking, err := service.Create(ctx, CreateBookingInput{StudentID: 1, RoomID: 3})

	assert.NoError(t, err)
	assert.NotNil(t, booking)
	mockProducer.AssertExpectations(t)
}

func TestBookingService_List(t *testing.T) {
	mockBookingRepo := &MockBookingRepository{}
	service := NewBookingService(mockBookingRepo, &MockRoomRepository{}, nil, nil, "")

	ctx := context.Background()
	expected := []domain.Booking{{ID: 2}, {ID: 1}}
	mockBookingRepo.On("List", ctx).Return(expected, nil).Once()

	bookings, err := service.List(ctx)

	assert.NoError(t, err)
	assert.Equal(t, expected, bookings)
	mockBookingRepo.AssertExpectations(t)
}

func TestBookingService_EventCarriesBookingDetails(t *testing.T) {
	mockBookingRepo := &MockBookingRepository{}
	mockRoomRepo := &MockRoomRepository{}
	mockProducer := &MockProducer{}

	service := NewBookingService(mockBookingRepo, mockRoomRepo, nil, mockProducer, "stay_events")

	ctx := context.Background()
	mockRoomRepo.On("GetByID", ctx, int64(3)).Return(&domain.Room{ID: 3, Available: true}, nil).Once()
	mockBookingRepo.On("Create", ctx, mock.AnythingOfType("*domain.Booking")).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Booking).ID = 11
	}).Return(nil).Once()

	var published kafka.StayEvent
	mockProducer.On("Publish", ctx, "stay_events", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		published = args.Get(3).(kafka.StayEvent)
	}).Return(nil).Once()

	_, err := service.Create(ctx, CreateBookingInput{StudentID: 2, RoomID: 3})

	assert.NoError(t, err)
	assert.Equal(t, kafka.EventBookingCreated, published.Type)
	assert.Equal(t, int64(11), published.BookingID)
	assert.Equal(t, int64(2), published.StudentID)
	assert.Equal(t, int64(3), published.RoomID)
	assert.False(t, published.OccurredAt.IsZero())
}
