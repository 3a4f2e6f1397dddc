package entity

import (
	"encoding/json"
	"fmt"

	"github.com/diillson/cdk-bootstrap-go/internal/shared/types"
)

// Identity represents the account and principal the current credentials resolve to.
type Identity struct {
	Account string `json:"account"`
	Arn     string `json:"arn"`
	UserID  string `json:"user_id,omitempty"`
}

// ParseIdentity parses the JSON printed by `aws sts get-caller-identity`.
// Account and Arn are required and Account must not be empty.
func ParseIdentity(data []byte) (Identity, error) {
	var payload struct {
		Account *string `json:"Account"`
		Arn     *string `json:"Arn"`
		UserID  *string `json:"UserId"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return Identity{}, fmt.Errorf("%w: %v", types.ErrInvalidIdentity, err)
	}
	if payload.Account == nil {
		return Identity{}, fmt.Errorf("%w: missing key \"Account\"", types.ErrInvalidIdentity)
	}
	if payload.Arn == nil {
		return Identity{}, fmt.Errorf("%w: missing key \"Arn\"", types.ErrInvalidIdentity)
	}
	if *payload.Account == "" {
		return Identity{}, fmt.Errorf("%w: empty account id", types.ErrInvalidIdentity)
	}

	identity := Identity{Account: *payload.Account, Arn: *payload.Arn}
	if payload.UserID != nil {
		identity.UserID = *payload.UserID
	}
	return identity, nil
}
