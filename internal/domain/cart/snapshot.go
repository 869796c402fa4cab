package cart

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/driftwear/storefront/internal/domain/shared/valueobject"
)

// SnapshotVersion is the current schema version of persisted cart state.
//
// Version history:
//
//	v1: unit prices were persisted as display-formatted strings
//	    (e.g. "Rp 125.000"), a leftover of the first release.
//	v2: unit prices are {amount, currency} objects.
const SnapshotVersion = 2

// Snapshot is the serialized form of a Cart. It is the single persisted
// blob per cart key; the Version field drives the migration chain on load.
type Snapshot struct {
	Version      int            `json:"version"`
	Items        []SnapshotItem `json:"items"`
	RemoteCartID string         `json:"remote_cart_id,omitempty"`
	Visible      bool           `json:"visible"`
}

// SnapshotItem is the serialized form of a LineItem.
type SnapshotItem struct {
	VariantID string            `json:"variant_id"`
	Title     string            `json:"title"`
	Size      string            `json:"size"`
	Color     string            `json:"color"`
	UnitPrice valueobject.Money `json:"unit_price"`
	Quantity  int               `json:"quantity"`
	ImageURL  string            `json:"image_url,omitempty"`
}

// TakeSnapshot captures the cart's current state at the latest version.
func TakeSnapshot(c *Cart) *Snapshot {
	snap := &Snapshot{
		Version:      SnapshotVersion,
		Items:        make([]SnapshotItem, 0, len(c.items)),
		RemoteCartID: c.remoteCartID,
		Visible:      c.visible,
	}
	for _, li := range c.items {
		snap.Items = append(snap.Items, SnapshotItem{
			VariantID: li.VariantID,
			Title:     li.Title,
			Size:      li.Size,
			Color:     li.Color,
			UnitPrice: li.UnitPrice,
			Quantity:  li.Quantity,
			ImageURL:  li.ImageURL,
		})
	}
	return snap
}

// Restore rebuilds a Cart from a snapshot. Lines whose quantity dropped to
// zero in storage are restored as-is; pruning stays a caller decision.
func Restore(snap *Snapshot) *Cart {
	c := New()
	if snap == nil {
		return c
	}
	for _, it := range snap.Items {
		c.items = append(c.items, LineItem{
			VariantID: it.VariantID,
			Title:     it.Title,
			Size:      it.Size,
			Color:     it.Color,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
			ImageURL:  it.ImageURL,
		})
	}
	c.remoteCartID = snap.RemoteCartID
	c.visible = snap.Visible
	return c
}

// Encode serializes the snapshot.
func (s *Snapshot) Encode() ([]byte, error) {
	return json.Marshal(s)
}

// snapshotMigration upgrades a raw blob from one schema version to the next.
type snapshotMigration func(raw []byte) ([]byte, error)

// snapshotMigrations maps a source version to the migration producing the
// next version. The chain runs once at load, in order, until the blob is at
// SnapshotVersion.
var snapshotMigrations = map[int]snapshotMigration{
	1: migrateV1PriceStrings,
}

// DecodeSnapshot parses a persisted blob, running any pending migrations
// first. Blobs without a version field are treated as v1.
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	var head struct {
		Version int `json:"version"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("cart snapshot is not valid JSON: %w", err)
	}

	version := head.Version
	if version == 0 {
		version = 1
	}
	if version > SnapshotVersion {
		return nil, fmt.Errorf("cart snapshot version %d is newer than supported version %d", version, SnapshotVersion)
	}

	for ; version < SnapshotVersion; version++ {
		migrate, ok := snapshotMigrations[version]
		if !ok {
			return nil, fmt.Errorf("no migration registered for cart snapshot version %d", version)
		}
		migrated, err := migrate(data)
		if err != nil {
			return nil, fmt.Errorf("migrating cart snapshot from version %d: %w", version, err)
		}
		data = migrated
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decoding cart snapshot: %w", err)
	}
	snap.Version = SnapshotVersion
	return &snap, nil
}

// migrateV1PriceStrings normalizes v1 unit prices that were persisted as
// display-formatted strings into {amount, currency} objects, stripping
// every non-numeric character. Formatted IDR prices used "." as a thousands
// separator, so separators are dropped rather than kept as decimal points.
func migrateV1PriceStrings(raw []byte) ([]byte, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}

	var items []map[string]json.RawMessage
	if rawItems, ok := doc["items"]; ok {
		if err := json.Unmarshal(rawItems, &items); err != nil {
			return nil, err
		}
	}

	for _, item := range items {
		rawPrice, ok := item["unit_price"]
		if !ok {
			continue
		}
		var formatted string
		if err := json.Unmarshal(rawPrice, &formatted); err != nil {
			// Already an object; nothing to migrate on this line.
			continue
		}
		amount := normalizeLegacyPrice(formatted)
		migrated, err := json.Marshal(map[string]string{
			"amount":   amount.String(),
			"currency": string(valueobject.BaseCurrency),
		})
		if err != nil {
			return nil, err
		}
		item["unit_price"] = migrated
	}

	if items != nil {
		rawItems, err := json.Marshal(items)
		if err != nil {
			return nil, err
		}
		doc["items"] = rawItems
	}
	doc["version"] = json.RawMessage("2")

	return json.Marshal(doc)
}

// normalizeLegacyPrice strips everything but digits from a formatted price
// string. Unparseable leftovers normalize to zero rather than failing the
// whole snapshot load.
func normalizeLegacyPrice(formatted string) decimal.Decimal {
	var digits strings.Builder
	for _, r := range formatted {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return decimal.Zero
	}
	amount, err := decimal.NewFromString(digits.String())
	if err != nil {
		return decimal.Zero
	}
	return amount
}
