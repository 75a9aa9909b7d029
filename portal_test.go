package main

import (
	"testing"
	"time"

	"edufin/models"

	"github.com/stretchr/testify/assert"
)

func TestLatestApprovedApplication(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	mk := func(id uint, status string, created time.Time) models.FinancialAidApplication {
		return models.FinancialAidApplication{ID: id, Status: status, CreatedAt: created}
	}

	t.Run("no applications", func(t *testing.T) {
		assert.Nil(t, latestApprovedApplication(nil))
	})

	t.Run("no approved applications", func(t *testing.T) {
		apps := []models.FinancialAidApplication{
			mk(1, models.AidPending, base),
			mk(2, models.AidRejected, base.AddDate(0, 1, 0)),
		}
		assert.Nil(t, latestApprovedApplication(apps))
	})

	t.Run("picks the most recently created approved one", func(t *testing.T) {
		apps := []models.FinancialAidApplication{
			mk(1, models.AidApproved, base),
			mk(2, models.AidApproved, base.AddDate(0, 2, 0)),
			mk(3, models.AidPending, base.AddDate(0, 3, 0)),
			mk(4, models.AidApproved, base.AddDate(0, 1, 0)),
		}
		got := latestApprovedApplication(apps)
		assert.NotNil(t, got)
		assert.Equal(t, uint(2), got.ID)
	})

	t.Run("later rejection does not mask an earlier approval", func(t *testing.T) {
		apps := []models.FinancialAidApplication{
			mk(1, models.AidApproved, base),
			mk(2, models.AidRejected, base.AddDate(0, 1, 0)),
		}
		got := latestApprovedApplication(apps)
		assert.NotNil(t, got)
		assert.Equal(t, uint(1), got.ID)
	})
}
