package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// ID is a user identifier. Backends send it either as a JSON number or a string.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	if _, err := strconv.ParseFloat(n.String(), 64); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

type Identity struct {
	ID       ID     `json:"id"       validate:"required"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Role     string `json:"role"     validate:"required,oneof=admin user"`
}

func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }
