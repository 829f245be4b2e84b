package postgres

import (
	"encoding/json"
	"time"

	"github.com/doneo/backend/domain"
)

func marshalUsers(users []domain.User) []byte {
	if len(users) == 0 {
		return nil
	}
	b, err := json.Marshal(users)
	if err != nil {
		return nil
	}
	return b
}

func unmarshalUsers(data []byte) []domain.User {
	if len(data) == 0 {
		return nil
	}
	var users []domain.User
	_ = json.Unmarshal(data, &users)
	return users
}

func marshalStrings(values []string) []byte {
	if len(values) == 0 {
		return nil
	}
	b, err := json.Marshal(values)
	if err != nil {
		return nil
	}
	return b
}

func unmarshalStrings(data []byte) []string {
	if len(data) == 0 {
		return nil
	}
	var values []string
	_ = json.Unmarshal(data, &values)
	return values
}

func nullTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return 100
	}
	return limit
}
