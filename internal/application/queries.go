package application

import (
	"time"

	"github.com/bnema/guardcore-cli/internal/domain"
	"github.com/bnema/guardcore-cli/pkg/guardcore/types"
)

type ProfileView struct {
	Profile domain.Profile
	Active  bool
}

type Dashboard struct {
	Profile   domain.Profile
	Admin     types.AdminResponse
	Stats     types.SubscriptionStatsResponse
	FetchedAt time.Time
}

// AdminUsage reports the admin's traffic against its usage limit, if any.
func (d Dashboard) AdminUsage() domain.Usage {
	usage := domain.Usage{}
	if d.Admin.CurrentUsage != nil {
		usage.Used = *d.Admin.CurrentUsage
	}
	if d.Admin.UsageLimit != nil {
		usage.Limit = *d.Admin.UsageLimit
	}
	return usage
}

// AdminCount reports subscriptions created against the admin's count limit.
func (d Dashboard) AdminCount() domain.Usage {
	count := domain.Usage{}
	if d.Admin.CurrentCount != nil {
		count.Used = *d.Admin.CurrentCount
	}
	if d.Admin.CountLimit != nil {
		count.Limit = *d.Admin.CountLimit
	}
	return count
}
