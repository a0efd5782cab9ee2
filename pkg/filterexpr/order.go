package filterexpr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// OrderSchema describes ordering defaults and whitelisted keys.
type OrderSchema struct {
	DefaultPrimary     string
	DefaultPrimaryDesc bool
	FallbackKey        string
	FallbackDesc       bool
	Fields             []string
}

// Order is a parsed order_by clause with at most two keys.
type Order struct {
	PrimaryKey    string
	PrimaryDesc   bool
	SecondaryKey  string
	SecondaryDesc bool
}

// ParseOrderBy parses "key [asc|desc][, key [asc|desc]]" against schema.
func ParseOrderBy(raw string, schema OrderSchema) (Order, error) { //nolint:gocognit,gocyclo // parsing DSL entails validation branches for readability
	if schema.DefaultPrimary == "" {
		return Order{}, errors.New("order schema default primary key required")
	}
	if schema.FallbackKey == "" {
		return Order{}, errors.New("order schema fallback key required")
	}
	if !lo.Contains(schema.Fields, schema.DefaultPrimary) {
		return Order{}, fmt.Errorf("order key %q missing from schema fields", schema.DefaultPrimary)
	}
	if !lo.Contains(schema.Fields, schema.FallbackKey) {
		return Order{}, fmt.Errorf("fallback order key %q missing from schema fields", schema.FallbackKey)
	}

	ord := Order{
		PrimaryKey:    schema.DefaultPrimary,
		PrimaryDesc:   schema.DefaultPrimaryDesc,
		SecondaryKey:  schema.FallbackKey,
		SecondaryDesc: schema.FallbackDesc,
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ord, nil
	}

	seen := make(map[string]struct{}, 2)
	idx := 0
	for _, seg := range strings.Split(raw, ",") {
		parts := strings.Fields(seg)
		if len(parts) == 0 {
			continue
		}
		key := parts[0]
		if !lo.Contains(schema.Fields, key) {
			return Order{}, fmt.Errorf("field %q cannot be used for ordering", key)
		}

		var desc bool
		switch len(parts) {
		case 1:
		case 2:
			switch strings.ToLower(parts[1]) {
			case "asc":
			case "desc":
				desc = true
			default:
				return Order{}, fmt.Errorf("invalid direction %q for field %q", parts[1], key)
			}
		default:
			return Order{}, fmt.Errorf("invalid order segment %q", strings.TrimSpace(seg))
		}

		if _, dup := seen[key]; dup {
			return Order{}, fmt.Errorf("duplicate order key %q", key)
		}
		seen[key] = struct{}{}

		switch idx {
		case 0:
			ord.PrimaryKey = key
			ord.PrimaryDesc = desc
			ord.SecondaryKey = schema.FallbackKey
			ord.SecondaryDesc = schema.FallbackDesc
		case 1:
			ord.SecondaryKey = key
			ord.SecondaryDesc = desc
		default:
			return Order{}, errors.New("order_by supports at most two keys")
		}
		idx++
	}

	if ord.SecondaryKey == ord.PrimaryKey {
		// the fallback collided with the requested primary; pick the first other key
		other, ok := lo.Find(schema.Fields, func(k string) bool { return k != ord.PrimaryKey })
		if !ok {
			return Order{}, errors.New("order schema requires at least two distinct keys for stable ordering")
		}
		ord.SecondaryKey = other
		ord.SecondaryDesc = false
	}

	return ord, nil
}

// Compare applies the order to two items given a per-key comparison
// returning -1, 0 or 1.
func (o Order) Compare(cmp func(key string) int) int {
	if c := directed(cmp(o.PrimaryKey), o.PrimaryDesc); c != 0 {
		return c
	}
	return directed(cmp(o.SecondaryKey), o.SecondaryDesc)
}

func directed(c int, desc bool) int {
	if desc {
		return -c
	}
	return c
}
