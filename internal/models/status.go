package models

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// Status 软删除状态：Active 或 Deleted(at)
// 存储在 deleted_at 列，读取时必须显式处理已删除分支
type Status struct {
	deleted bool
	at      time.Time
}

// Active 未删除
func Active() Status {
	return Status{}
}

// Deleted 在 at 时刻被删除
func Deleted(at time.Time) Status {
	return Status{deleted: true, at: at}
}

func (s Status) IsDeleted() bool {
	return s.deleted
}

// DeletedAt 返回删除时间，未删除时 ok 为 false
func (s Status) DeletedAt() (at time.Time, ok bool) {
	return s.at, s.deleted
}

// GormDataType 让 AutoMigrate 按时间列建表
func (Status) GormDataType() string {
	return "time"
}

// Value implements driver.Valuer.
func (s Status) Value() (driver.Value, error) {
	if !s.deleted {
		return nil, nil
	}
	return s.at, nil
}

// Scan implements sql.Scanner.
func (s *Status) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*s = Active()
	case time.Time:
		*s = Deleted(v)
	case string:
		return s.scanText(v)
	case []byte:
		return s.scanText(string(v))
	default:
		return fmt.Errorf("models: cannot scan %T into Status", src)
	}
	return nil
}

var statusLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02T15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
}

func (s *Status) scanText(v string) error {
	if v == "" {
		*s = Active()
		return nil
	}
	for _, layout := range statusLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			*s = Deleted(t)
			return nil
		}
	}
	return fmt.Errorf("models: cannot parse %q as deletion time", v)
}
