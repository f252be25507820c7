package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"checkinly-backend/events"
	"checkinly-backend/models"
	"checkinly-backend/utils"
)

type PaymentService struct {
	DB     *gorm.DB
	Events events.Publisher
	Now    func() time.Time
}

func NewPaymentService(db *gorm.DB, pub events.Publisher) *PaymentService {
	return &PaymentService{DB: db, Events: pub, Now: time.Now}
}

type PaymentFilter struct {
	Status    string `form:"status"`
	Method    string `form:"method"`
	BookingID string `form:"booking_id"`
}

type PaymentInput struct {
	BookingID     string  `json:"booking_id" validate:"required"`
	Amount        float64 `json:"amount" validate:"gt=0"`
	PaymentMethod string  `json:"payment_method" validate:"required,oneof=credit_card debit_card cash bank_transfer"`
	PaymentStatus string  `json:"payment_status" validate:"omitempty,oneof=completed pending failed refunded"`
	TransactionID string  `json:"transaction_id"`
}

type PaymentUpdateInput struct {
	Amount        *float64 `json:"amount" validate:"omitempty,gt=0"`
	PaymentMethod *string  `json:"payment_method" validate:"omitempty,oneof=credit_card debit_card cash bank_transfer"`
	PaymentStatus *string  `json:"payment_status" validate:"omitempty,oneof=completed pending failed refunded"`
	TransactionID *string  `json:"transaction_id"`
}

// PaymentSummary aggregates amounts per payment status.
type PaymentSummary struct {
	TotalRevenue float64            `json:"total_revenue"`
	Pending      float64            `json:"pending"`
	Failed       float64            `json:"failed"`
	Refunded     float64            `json:"refunded"`
	Count        int64              `json:"count"`
	ByMethod     map[string]float64 `json:"by_method"`
}

func (s *PaymentService) List(ctx context.Context, hotelID string, f PaymentFilter) ([]models.Payment, error) {
	q := s.DB.WithContext(ctx).
		Preload("Booking").
		Preload("Booking.Guest").
		Preload("Booking.Room").
		Where("hotel_id = ?", hotelID)
	if f.Status != "" {
		q = q.Where("payment_status = ?", f.Status)
	}
	if f.Method != "" {
		q = q.Where("payment_method = ?", f.Method)
	}
	if f.BookingID != "" {
		q = q.Where("booking_id = ?", f.BookingID)
	}

	var payments []models.Payment
	err := q.Order("created_at DESC").Find(&payments).Error
	return payments, err
}

func (s *PaymentService) Get(ctx context.Context, hotelID, id string) (*models.Payment, error) {
	var payment models.Payment
	err := s.DB.WithContext(ctx).
		Preload("Booking").
		Preload("Booking.Guest").
		Where("hotel_id = ? AND id = ?", hotelID, id).
		First(&payment).Error
	if err != nil {
		return nil, dbError(err)
	}
	return &payment, nil
}

// transactionRef builds a TXN-nnnnnn reference from the clock.
func transactionRef(now time.Time) string {
	return fmt.Sprintf("TXN-%06d", now.UnixNano()%1000000)
}

// ----------------------------------------------------
// Create
// ----------------------------------------------------
func (s *PaymentService) Create(ctx context.Context, hotelID string, in PaymentInput) (*models.Payment, error) {
	in.TransactionID = strings.TrimSpace(in.TransactionID)
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	var booking models.Booking
	if err := s.DB.WithContext(ctx).Where("hotel_id = ? AND id = ?", hotelID, in.BookingID).First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fieldError("booking_id", "Booking not found", ErrNotFound)
		}
		return nil, err
	}

	status := in.PaymentStatus
	if status == "" {
		status = models.PaymentPending
	}
	payment := &models.Payment{
		HotelID:       hotelID,
		BookingID:     booking.ID,
		Amount:        in.Amount,
		PaymentMethod: in.PaymentMethod,
		PaymentStatus: status,
		TransactionID: in.TransactionID,
	}
	if status == models.PaymentCompleted {
		now := s.Now().UTC()
		payment.PaidAt = &now
		if payment.TransactionID == "" {
			payment.TransactionID = transactionRef(now)
		}
	}
	if err := s.DB.WithContext(ctx).Create(payment).Error; err != nil {
		return nil, dbError(err)
	}

	utils.Logger.Infof("💳 payment %s recorded (%s, %.2f)", payment.ID, payment.PaymentStatus, payment.Amount)
	if status == models.PaymentCompleted {
		s.publishCompleted(ctx, payment)
	}
	return payment, nil
}

// ----------------------------------------------------
// Update; moving into completed stamps paid_at
// ----------------------------------------------------
func (s *PaymentService) Update(ctx context.Context, hotelID, id string, in PaymentUpdateInput) (*models.Payment, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	payment, err := s.Get(ctx, hotelID, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.Amount != nil {
		updates["amount"] = *in.Amount
	}
	if in.PaymentMethod != nil {
		updates["payment_method"] = *in.PaymentMethod
	}
	if in.TransactionID != nil {
		updates["transaction_id"] = strings.TrimSpace(*in.TransactionID)
	}
	completed := false
	if in.PaymentStatus != nil && *in.PaymentStatus != payment.PaymentStatus {
		updates["payment_status"] = *in.PaymentStatus
		if *in.PaymentStatus == models.PaymentCompleted {
			completed = true
			now := s.Now().UTC()
			updates["paid_at"] = now
			if payment.TransactionID == "" && in.TransactionID == nil {
				updates["transaction_id"] = transactionRef(now)
			}
		}
	}
	if len(updates) == 0 {
		return payment, nil
	}

	if err := s.DB.WithContext(ctx).Model(payment).Updates(updates).Error; err != nil {
		return nil, dbError(err)
	}
	updated, err := s.Get(ctx, hotelID, id)
	if err != nil {
		return nil, err
	}
	if completed {
		s.publishCompleted(ctx, updated)
	}
	return updated, nil
}

func (s *PaymentService) Delete(ctx context.Context, hotelID, id string) error {
	res := s.DB.WithContext(ctx).Where("hotel_id = ? AND id = ?", hotelID, id).Delete(&models.Payment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

type paymentBucket struct {
	PaymentStatus string
	PaymentMethod string
	Total         float64
	Count         int64
}

func (s *PaymentService) Summary(ctx context.Context, hotelID string) (*PaymentSummary, error) {
	var buckets []paymentBucket
	err := s.DB.WithContext(ctx).
		Model(&models.Payment{}).
		Select("payment_status, payment_method, COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count").
		Where("hotel_id = ?", hotelID).
		Group("payment_status, payment_method").
		Scan(&buckets).Error
	if err != nil {
		return nil, err
	}

	sum := &PaymentSummary{ByMethod: map[string]float64{}}
	for _, b := range buckets {
		sum.Count += b.Count
		switch b.PaymentStatus {
		case models.PaymentCompleted:
			sum.TotalRevenue += b.Total
			sum.ByMethod[b.PaymentMethod] += b.Total
		case models.PaymentPending:
			sum.Pending += b.Total
		case models.PaymentFailed:
			sum.Failed += b.Total
		case models.PaymentRefunded:
			sum.Refunded += b.Total
		}
	}
	return sum, nil
}

func (s *PaymentService) publishCompleted(ctx context.Context, p *models.Payment) {
	publish(ctx, s.Events, events.New(events.PaymentCompleted, p.HotelID, map[string]string{
		"payment_id": p.ID,
		"booking_id": p.BookingID,
		"amount":     strconv.FormatFloat(p.Amount, 'f', 2, 64),
		"method":     p.PaymentMethod,
	}))
}
