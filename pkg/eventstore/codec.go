package eventstore

import (
	"encoding/json"
	"fmt"

	"github.com/aitlahcen/comptes/pkg/domain/account"
)

// Encode serializes a domain event into its persisted type name and JSON
// payload. Decimal amounts marshal as strings, so no precision is lost on the
// way to storage.
func Encode(e account.Event) (eventType string, payload []byte, err error) {
	payload, err = json.Marshal(e)
	if err != nil {
		return "", nil, fmt.Errorf("encode %s: %w", e.Type(), err)
	}
	return e.Type(), payload, nil
}

// Decode deserializes a stored event back into its concrete domain event.
func Decode(s StoredEvent) (account.Event, error) {
	switch s.Type {
	case account.EventTypeCreated:
		var e account.AccountCreated
		if err := json.Unmarshal(s.Payload, &e); err != nil {
			return nil, fmt.Errorf("decode %s: %w", s.Type, err)
		}
		return e, nil
	case account.EventTypeActivated:
		var e account.AccountActivated
		if err := json.Unmarshal(s.Payload, &e); err != nil {
			return nil, fmt.Errorf("decode %s: %w", s.Type, err)
		}
		return e, nil
	case account.EventTypeCredited:
		var e account.AccountCredited
		if err := json.Unmarshal(s.Payload, &e); err != nil {
			return nil, fmt.Errorf("decode %s: %w", s.Type, err)
		}
		return e, nil
	case account.EventTypeDebited:
		var e account.AccountDebited
		if err := json.Unmarshal(s.Payload, &e); err != nil {
			return nil, fmt.Errorf("decode %s: %w", s.Type, err)
		}
		return e, nil
	default:
		return nil, fmt.Errorf("unknown event type %q", s.Type)
	}
}
