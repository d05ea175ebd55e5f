package store

import (
	"context"
	"fmt"

	"github.com/existflow/upcycle/internal/docstore"
	"github.com/existflow/upcycle/internal/logger"
	"github.com/existflow/upcycle/internal/model"
)

// LoadInventory replaces the inventory with the remote collection
func (s *Store) LoadInventory(ctx context.Context) error {
	uid, gen := s.session()
	if uid == "" {
		return ErrNoSession
	}

	docs, err := s.docs.GetAll(ctx, docstore.UserCollection(uid, docstore.Inventory))
	if err != nil {
		s.warn("Failed to load inventory", CollectionInventory, err)
		return fmt.Errorf("load inventory: %w", err)
	}

	items := make([]model.InventoryItem, 0, len(docs))
	for _, d := range docs {
		items = append(items, decodeInventoryItem(d))
	}

	s.mu.Lock()
	if s.generation == gen {
		s.inventory = items
	}
	s.mu.Unlock()

	s.notify(CollectionInventory)
	return nil
}

// Inventory returns the mirrored inventory
func (s *Store) Inventory() []model.InventoryItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.inventory)
}

// AddInventoryItem stores an item under a generated document id and
// appends it locally
func (s *Store) AddInventoryItem(ctx context.Context, item model.InventoryItem) error {
	uid, gen := s.session()
	if uid == "" {
		return ErrNoSession
	}

	if _, err := s.docs.Add(ctx, docstore.UserCollection(uid, docstore.Inventory), encodeInventoryItem(item)); err != nil {
		s.warn("Failed to add inventory item", CollectionInventory, err, logger.F("item", item.ID))
		return fmt.Errorf("add inventory item: %w", err)
	}

	s.mu.Lock()
	if s.generation == gen {
		s.inventory, _ = insertIfAbsent(s.inventory, item, inventoryKey, false)
	}
	s.mu.Unlock()

	s.notify(CollectionInventory)
	return nil
}

// SaveScannedItem adds a scanned item and records the scan in the history
func (s *Store) SaveScannedItem(ctx context.Context, item model.InventoryItem) error {
	if err := s.AddInventoryItem(ctx, item); err != nil {
		return err
	}
	s.record(ctx, model.ActivityScan, "Memindai "+item.Name, "Ditambahkan ke inventaris ("+item.Category+")")
	return nil
}

func inventoryKey(i model.InventoryItem) int64 { return i.ID }
