package sequence

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"materials-billing-backend/internal/models"

	"gorm.io/gorm"
)

const (
	billPrefix  = "INV-"
	maxAttempts = 5
)

// Allocator hands out sequential bill numbers of the form INV-0001. The
// read-increment-write cycle runs as one critical section for all callers in
// this process; allocations raced by another process hit the unique index on
// bill_no and are retried with a freshly read maximum.
type Allocator struct {
	mu sync.Mutex
}

func NewAllocator() *Allocator {
	return &Allocator{}
}

// Allocate opens a transaction on db, computes the next bill number and hands
// it to persist, which must insert the invoice row carrying that number
// within the same transaction. On a duplicate bill_no the transaction is
// rolled back and re-run with a re-read maximum.
func (a *Allocator) Allocate(db *gorm.DB, persist func(tx *gorm.DB, billNo string) error) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	var err error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		err = db.Transaction(func(tx *gorm.DB) error {
			billNo, nextErr := next(tx)
			if nextErr != nil {
				return nextErr
			}
			return persist(tx, billNo)
		})
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
	}
	return fmt.Errorf("bill number allocation kept conflicting after %d attempts: %w", maxAttempts, err)
}

// next reads the highest existing bill number inside tx and increments it,
// zero-padded to 4 digits. A malformed latest number falls back to the
// highest parseable number across all rows, floored at the row count, so a
// legacy row can never propose a number a well-formed row already holds.
func next(tx *gorm.DB) (string, error) {
	var last models.Invoice
	err := tx.Select("bill_no").Order("created_at DESC, bill_no DESC").First(&last).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("failed to read last bill number: %w", err)
	}

	lastNum := int64(0)
	if err == nil {
		lastNum, err = parseBillNo(last.BillNo)
		if err != nil {
			lastNum, err = fallbackNumber(tx)
			if err != nil {
				return "", err
			}
		}
	}

	return fmt.Sprintf("%s%04d", billPrefix, lastNum+1), nil
}

func fallbackNumber(tx *gorm.DB) (int64, error) {
	var billNos []string
	if err := tx.Model(&models.Invoice{}).Pluck("bill_no", &billNos).Error; err != nil {
		return 0, fmt.Errorf("failed to read bill numbers: %w", err)
	}

	highest := int64(len(billNos))
	for _, billNo := range billNos {
		if n, err := parseBillNo(billNo); err == nil && n > highest {
			highest = n
		}
	}
	return highest, nil
}

func parseBillNo(billNo string) (int64, error) {
	if !strings.HasPrefix(billNo, billPrefix) {
		return 0, fmt.Errorf("bill number %q has no %s prefix", billNo, billPrefix)
	}
	n, err := strconv.ParseInt(strings.TrimPrefix(billNo, billPrefix), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("bill number %q has a non-numeric suffix", billNo)
	}
	return n, nil
}
