package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/catering-ops/backend/internal/domain/entity"
	"github.com/catering-ops/backend/internal/domain/valueobject"
)

// DailyBucket is the number of orders created on one calendar day.
type DailyBucket struct {
	Date  time.Time `json:"date"`
	Key   string    `json:"key"`
	Count int       `json:"count"`
}

// RevenueBucket is the revenue of the orders created on one calendar day.
type RevenueBucket struct {
	Date    time.Time       `json:"date"`
	Key     string          `json:"key"`
	Revenue decimal.Decimal `json:"revenue"`
	Count   int             `json:"count"`
}

// StatusCategory is the report column a delivery status is counted in.
type StatusCategory string

const (
	StatusCategoryCompleted  StatusCategory = "completed"
	StatusCategoryCancelled  StatusCategory = "cancelled"
	StatusCategoryInProgress StatusCategory = "in_progress"
	StatusCategoryPending    StatusCategory = "pending"
)

// StatusCounts is the number of orders per status category.
type StatusCounts struct {
	Completed  int `json:"completed"`
	Cancelled  int `json:"cancelled"`
	InProgress int `json:"in_progress"`
	Pending    int `json:"pending"`
}

// Total returns the number of classified orders.
func (c StatusCounts) Total() int {
	return c.Completed + c.Cancelled + c.InProgress + c.Pending
}

// ClassifyStatus puts a delivery status in exactly one category.
// Unknown statuses, FAILED included, count as pending.
func ClassifyStatus(status entity.DeliveryStatus) StatusCategory {
	switch status {
	case entity.DeliveryStatusDelivered:
		return StatusCategoryCompleted
	case entity.DeliveryStatusCancelled:
		return StatusCategoryCancelled
	case entity.DeliveryStatusReadyForDelivery, entity.DeliveryStatusPartiallyDelivered:
		return StatusCategoryInProgress
	default:
		return StatusCategoryPending
	}
}

// CountByStatus classifies every order into its status category.
func CountByStatus(orders []*entity.Order) StatusCounts {
	var counts StatusCounts
	for _, o := range orders {
		if o == nil {
			continue
		}
		switch ClassifyStatus(o.DeliveryStatus) {
		case StatusCategoryCompleted:
			counts.Completed++
		case StatusCategoryCancelled:
			counts.Cancelled++
		case StatusCategoryInProgress:
			counts.InProgress++
		default:
			counts.Pending++
		}
	}
	return counts
}

// dayIndex returns the midnight of every day of r keyed by DayKey.
func dayIndex(r valueobject.DateRange) (map[string]time.Time, []string) {
	n := DaysInRange(r)
	days := make(map[string]time.Time, n)
	keys := make([]string, 0, n)
	start := StartOfDay(r.Start)
	for i := 0; i < n; i++ {
		day := AddDays(start, i)
		key := DayKey(day)
		days[key] = day
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return days, keys
}

// orderDayKey returns the day key of an order's creation in loc.
// Orders without a creation time have no key.
func orderDayKey(o *entity.Order, loc *time.Location) (string, bool) {
	if o == nil || o.CreatedAt.IsZero() {
		return "", false
	}
	return DayKey(o.CreatedAt.In(loc)), true
}

// BucketByDay counts orders per calendar day of r.
// Every day of r gets a bucket, empty days count zero. Orders created outside r are ignored.
func BucketByDay(orders []*entity.Order, r valueobject.DateRange) []DailyBucket {
	days, keys := dayIndex(r)
	loc := r.Start.Location()

	counts := make(map[string]int, len(keys))
	for _, o := range orders {
		key, ok := orderDayKey(o, loc)
		if !ok {
			continue
		}
		if _, inRange := days[key]; inRange {
			counts[key]++
		}
	}

	buckets := make([]DailyBucket, 0, len(keys))
	for _, key := range keys {
		buckets = append(buckets, DailyBucket{
			Date:  days[key],
			Key:   key,
			Count: counts[key],
		})
	}
	return buckets
}

// BucketRevenueByDay sums order totals per calendar day of r.
// Cancelled orders bring no revenue and are left out.
func BucketRevenueByDay(orders []*entity.Order, r valueobject.DateRange) []RevenueBucket {
	days, keys := dayIndex(r)
	loc := r.Start.Location()

	revenue := make(map[string]decimal.Decimal, len(keys))
	counts := make(map[string]int, len(keys))
	for _, o := range orders {
		if o == nil || o.DeliveryStatus == entity.DeliveryStatusCancelled {
			continue
		}
		key, ok := orderDayKey(o, loc)
		if !ok {
			continue
		}
		if _, inRange := days[key]; inRange {
			revenue[key] = revenue[key].Add(o.Total)
			counts[key]++
		}
	}

	buckets := make([]RevenueBucket, 0, len(keys))
	for _, key := range keys {
		buckets = append(buckets, RevenueBucket{
			Date:    days[key],
			Key:     key,
			Revenue: revenue[key],
			Count:   counts[key],
		})
	}
	return buckets
}

// FilterByRange keeps the orders created on a day of r.
func FilterByRange(orders []*entity.Order, r valueobject.DateRange) []*entity.Order {
	filtered := make([]*entity.Order, 0, len(orders))
	for _, o := range orders {
		if o == nil || o.CreatedAt.IsZero() {
			continue
		}
		if r.Contains(o.CreatedAt) {
			filtered = append(filtered, o)
		}
	}
	return filtered
}
