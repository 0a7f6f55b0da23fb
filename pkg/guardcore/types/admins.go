package types

import (
	"fmt"
	"regexp"
	"sort"
	"time"

	"github.com/bnema/guardcore-cli/pkg/guardcore/core"
)

type AdminRole string

const (
	AdminRoleOwner    AdminRole = "owner"
	AdminRoleReseller AdminRole = "reseller"
)

type AdminPlaceHolderCategory string

const (
	PlaceHolderCategoryInfo     AdminPlaceHolderCategory = "info"
	PlaceHolderCategoryLimited  AdminPlaceHolderCategory = "limited"
	PlaceHolderCategoryExpired  AdminPlaceHolderCategory = "expired"
	PlaceHolderCategoryDisabled AdminPlaceHolderCategory = "disabled"
)

// AdminPlaceholderRemarkFormats lists the {token} names a placeholder remark
// may reference.
var AdminPlaceholderRemarkFormats = []string{
	"id",
	"username",
	"owner_username",
	"enabled",
	"activated",
	"limited",
	"expired",
	"is_active",
	"limit_usage",
	"current_usage",
	"left_usage",
	"expire_date",
	"expire_in",
	"expire_in_days",
}

var remarkTokenPattern = regexp.MustCompile(`\{([^{}]*)\}`)

type AdminPlaceHolder struct {
	Remark     string                     `json:"remark" validate:"required"`
	UUID       *string                    `json:"uuid,omitempty"`
	Address    string                     `json:"address" validate:"required"`
	Port       *int                       `json:"port,omitempty" validate:"omitempty,gte=1,lte=65535"`
	Categories []AdminPlaceHolderCategory `json:"categories" validate:"dive,oneof=info limited expired disabled"`
}

// UnknownRemarkTokens returns the {token} names in remark that are not in
// AdminPlaceholderRemarkFormats, sorted and deduplicated.
func UnknownRemarkTokens(remark string) []string {
	known := make(map[string]struct{}, len(AdminPlaceholderRemarkFormats))
	for _, name := range AdminPlaceholderRemarkFormats {
		known[name] = struct{}{}
	}

	seen := map[string]struct{}{}
	var unknown []string
	for _, match := range remarkTokenPattern.FindAllStringSubmatch(remark, -1) {
		name := match[1]
		if _, ok := known[name]; ok {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		unknown = append(unknown, name)
	}
	sort.Strings(unknown)
	return unknown
}

func validatePlaceholders(placeholders []AdminPlaceHolder) error {
	for i, placeholder := range placeholders {
		if unknown := UnknownRemarkTokens(placeholder.Remark); len(unknown) > 0 {
			return fmt.Errorf("placeholder %d: unknown remark tokens %v", i, unknown)
		}
	}
	return nil
}

type AdminToken struct {
	AccessToken string `json:"access_token" validate:"required"`
	TokenType   string `json:"token_type" validate:"required"`
}

type AdminResponse struct {
	ID                    int64              `json:"id"`
	Username              string             `json:"username" validate:"required"`
	Role                  AdminRole          `json:"role" validate:"required"`
	Enabled               bool               `json:"enabled"`
	APIKey                *string            `json:"api_key,omitempty"`
	ServiceIDs            []int64            `json:"service_ids"`
	CreateAccess          *bool              `json:"create_access,omitempty"`
	UpdateAccess          *bool              `json:"update_access,omitempty"`
	RemoveAccess          *bool              `json:"remove_access,omitempty"`
	CountLimit            *int64             `json:"count_limit,omitempty" validate:"omitempty,gte=0"`
	CurrentCount          *int64             `json:"current_count,omitempty" validate:"omitempty,gte=0"`
	LeftCount             *int64             `json:"left_count,omitempty"`
	UsageLimit            *int64             `json:"usage_limit,omitempty" validate:"omitempty,gte=0"`
	CurrentUsage          *int64             `json:"current_usage,omitempty" validate:"omitempty,gte=0"`
	LeftUsage             *int64             `json:"left_usage,omitempty"`
	LifetimeUsage         *int64             `json:"lifetime_usage,omitempty" validate:"omitempty,gte=0"`
	Placeholders          []AdminPlaceHolder `json:"placeholders" validate:"dive"`
	MaxLinks              *int64             `json:"max_links,omitempty" validate:"omitempty,gte=0"`
	ShuffleLinks          *bool              `json:"shuffle_links,omitempty"`
	AccessTitle           *string            `json:"access_title,omitempty"`
	AccessDescription     *string            `json:"access_description,omitempty"`
	TelegramID            *string            `json:"telegram_id,omitempty"`
	TelegramToken         *string            `json:"telegram_token,omitempty"`
	TelegramLogger        *bool              `json:"telegram_logger,omitempty"`
	TelegramNotifications *bool              `json:"telegram_notifications,omitempty"`
	ExpireWarningDays     *int64             `json:"expire_warning_days,omitempty" validate:"omitempty,gte=0"`
	UsageWarningPercent   *int64             `json:"usage_warning_percent,omitempty" validate:"omitempty,gte=0,lte=100"`
	CreatedAt             time.Time          `json:"created_at"`
	UpdatedAt             *time.Time         `json:"updated_at,omitempty"`
	LastLoginAt           *time.Time         `json:"last_login_at,omitempty"`
	LastOnlineAt          *time.Time         `json:"last_online_at,omitempty"`
}

type AdminCreate struct {
	Username            string             `json:"username" validate:"required"`
	Password            string             `json:"password" validate:"required"`
	Role                AdminRole          `json:"role" validate:"required"`
	ServiceIDs          []int64            `json:"service_ids,omitempty"`
	CreateAccess        *bool              `json:"create_access,omitempty"`
	UpdateAccess        *bool              `json:"update_access,omitempty"`
	RemoveAccess        *bool              `json:"remove_access,omitempty"`
	CountLimit          *int64             `json:"count_limit,omitempty" validate:"omitempty,gte=0"`
	UsageLimit          *int64             `json:"usage_limit,omitempty" validate:"omitempty,gte=0"`
	AccessPrefix        *string            `json:"access_prefix,omitempty"`
	Placeholders        []AdminPlaceHolder `json:"placeholders,omitempty" validate:"dive"`
	MaxLinks            *int64             `json:"max_links,omitempty" validate:"omitempty,gte=0"`
	ShuffleLinks        *bool              `json:"shuffle_links,omitempty"`
	AccessTitle         *string            `json:"access_title,omitempty"`
	AccessDescription   *string            `json:"access_description,omitempty"`
	TelegramID          *string            `json:"telegram_id,omitempty"`
	TelegramToken       *string            `json:"telegram_token,omitempty"`
	ExpireWarningDays   *int64             `json:"expire_warning_days,omitempty" validate:"omitempty,gte=0"`
	UsageWarningPercent *int64             `json:"usage_warning_percent,omitempty" validate:"omitempty,gte=0,lte=100"`
}

func (a AdminCreate) Validate() error {
	if err := core.Validate(a); err != nil {
		return err
	}
	return validatePlaceholders(a.Placeholders)
}

// AdminUpdate carries the fields an owner may change on another admin. Nil
// fields are left untouched by the server.
type AdminUpdate struct {
	Password            *string            `json:"password,omitempty" validate:"omitempty,min=1"`
	ServiceIDs          []int64            `json:"service_ids,omitempty"`
	CreateAccess        *bool              `json:"create_access,omitempty"`
	UpdateAccess        *bool              `json:"update_access,omitempty"`
	RemoveAccess        *bool              `json:"remove_access,omitempty"`
	CountLimit          *int64             `json:"count_limit,omitempty" validate:"omitempty,gte=0"`
	UsageLimit          *int64             `json:"usage_limit,omitempty" validate:"omitempty,gte=0"`
	Placeholders        []AdminPlaceHolder `json:"placeholders,omitempty" validate:"dive"`
	MaxLinks            *int64             `json:"max_links,omitempty" validate:"omitempty,gte=0"`
	ShuffleLinks        *bool              `json:"shuffle_links,omitempty"`
	AccessTitle         *string            `json:"access_title,omitempty"`
	AccessDescription   *string            `json:"access_description,omitempty"`
	TelegramID          *string            `json:"telegram_id,omitempty"`
	TelegramToken       *string            `json:"telegram_token,omitempty"`
	ExpireWarningDays   *int64             `json:"expire_warning_days,omitempty" validate:"omitempty,gte=0"`
	UsageWarningPercent *int64             `json:"usage_warning_percent,omitempty" validate:"omitempty,gte=0,lte=100"`
}

func (a AdminUpdate) Validate() error {
	if err := core.Validate(a); err != nil {
		return err
	}
	return validatePlaceholders(a.Placeholders)
}

// AdminCurrentUpdate is the subset of settings an admin may change on itself.
type AdminCurrentUpdate struct {
	Password              *string            `json:"password,omitempty" validate:"omitempty,min=1"`
	Placeholders          []AdminPlaceHolder `json:"placeholders,omitempty" validate:"dive"`
	MaxLinks              *int64             `json:"max_links,omitempty" validate:"omitempty,gte=0"`
	ShuffleLinks          *bool              `json:"shuffle_links,omitempty"`
	AccessTitle           *string            `json:"access_title,omitempty"`
	AccessDescription     *string            `json:"access_description,omitempty"`
	TelegramID            *string            `json:"telegram_id,omitempty"`
	TelegramToken         *string            `json:"telegram_token,omitempty"`
	TelegramLogger        *bool              `json:"telegram_logger,omitempty"`
	TelegramNotifications *bool              `json:"telegram_notifications,omitempty"`
	ExpireWarningDays     *int64             `json:"expire_warning_days,omitempty" validate:"omitempty,gte=0"`
	UsageWarningPercent   *int64             `json:"usage_warning_percent,omitempty" validate:"omitempty,gte=0,lte=100"`
}

func (a AdminCurrentUpdate) Validate() error {
	if err := core.Validate(a); err != nil {
		return err
	}
	return validatePlaceholders(a.Placeholders)
}

type AdminUsageLog struct {
	Usage     int64     `json:"usage" validate:"gte=0"`
	CreatedAt time.Time `json:"created_at"`
}

type AdminUsageLogsResponse struct {
	Admin     AdminResponse   `json:"admin"`
	UsageLogs []AdminUsageLog `json:"usage_logs" validate:"dive"`
}
