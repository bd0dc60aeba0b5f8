package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"equipment-inventory/internal/dto"
	"equipment-inventory/internal/entities"
	"equipment-inventory/internal/repositories/inmemory"
	"equipment-inventory/internal/services"
	apperrors "equipment-inventory/pkg/errors"
	"equipment-inventory/pkg/types"
)

func TestEquipmentHistoryService_AddEntry(t *testing.T) {
	store := inmemory.NewStore()
	equipment := services.NewEquipmentService(store, nil, nil, zap.NewNop())
	history := services.NewEquipmentHistoryService(store, zap.NewNop())
	ctx := context.Background()

	created, err := equipment.CreateEquipment(ctx, thinkPad())
	require.NoError(t, err)

	entry, err := history.AddEntry(ctx, created.ID, dto.CreateHistoryDTO{
		Action:      "upgrade",
		Description: "Добавлено 16GB RAM",
	})
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, entities.DefaultPerformer, entry.PerformedBy)

	list, err := history.GetHistory(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, entities.ActionUpgrade, list[0].Action)
	assert.True(t, list[0].PerformedAt.After(list[1].PerformedAt))
}

func TestEquipmentHistoryService_AddEntry_MalformedID(t *testing.T) {
	store := inmemory.NewStore()
	history := services.NewEquipmentHistoryService(store, zap.NewNop())

	entry, err := history.AddEntry(context.Background(), "1", dto.CreateHistoryDTO{Action: "move", Description: "x"})
	assert.NoError(t, err)
	assert.Nil(t, entry)
	assert.Zero(t, store.Calls())
}

func TestEquipmentHistoryService_AddEntry_UnknownAction(t *testing.T) {
	history := services.NewEquipmentHistoryService(inmemory.NewStore(), zap.NewNop())

	_, err := history.AddEntry(context.Background(), "123e4567-e89b-12d3-a456-426614174000",
		dto.CreateHistoryDTO{Action: "maintenance", Description: "x"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidAction)
}

func TestEquipmentHistoryService_GetJournal(t *testing.T) {
	store := inmemory.NewStore()
	equipment := services.NewEquipmentService(store, nil, nil, zap.NewNop())
	history := services.NewEquipmentHistoryService(store, zap.NewNop())
	ctx := context.Background()
	seedFleet(t, equipment)

	journal, err := history.GetJournal(ctx, types.JournalFilter{})
	require.NoError(t, err)
	require.Len(t, journal, 5)
	assert.Equal(t, "iPhone 14 Pro", journal[0].EquipmentName)
	assert.Equal(t, "MOB-2023-078", journal[0].InventoryNumber)

	journal, err = history.GetJournal(ctx, types.JournalFilter{Search: "cisco"})
	require.NoError(t, err)
	require.Len(t, journal, 1)
	assert.Equal(t, "NET-2022-015", journal[0].InventoryNumber)

	journal, err = history.GetJournal(ctx, types.JournalFilter{Action: "repair"})
	require.NoError(t, err)
	assert.Empty(t, journal)

	journal, err = history.GetJournal(ctx, types.JournalFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, journal, 2)

	// часы хранилища стартуют 2024-01-01 09:00 UTC
	dayAfter := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	journal, err = history.GetJournal(ctx, types.JournalFilter{DateFrom: &dayAfter})
	require.NoError(t, err)
	assert.Empty(t, journal)
}
