package activity_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-tracker/internal/application/activity"
	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("act-%03d", n)
	}
}

func TestRecord_InsertaAlInicio(t *testing.T) {
	fixed := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	log := activity.NewLog(activity.WithClock(func() time.Time { return fixed }), activity.WithIDGenerator(sequentialIDs()))

	log.Record(entity.ActivityInventory, "primero", "a")
	got := log.Record(entity.ActivitySale, "segundo", "b")

	require.Equal(t, 2, log.Len())
	recent := log.Recent(2)
	assert.Equal(t, got, recent[0], "la entrada más reciente debe quedar primero")
	assert.Equal(t, "primero", recent[1].Title)
	assert.Equal(t, "act-002", recent[0].ID)
	assert.Equal(t, fixed, recent[0].Timestamp)
	assert.Equal(t, entity.ActivitySale, recent[0].Type)
}

// La longitud tras N llamadas es min(N, 50) y la primera es siempre la última registrada.
func TestRecord_LongitudAcotada(t *testing.T) {
	for _, n := range []int{0, 1, 49, 50, 51, 120} {
		t.Run(fmt.Sprintf("N=%d", n), func(t *testing.T) {
			log := activity.NewLog(activity.WithIDGenerator(sequentialIDs()))
			var last entity.Activity
			for i := 0; i < n; i++ {
				last = log.Record(entity.ActivityInfo, fmt.Sprintf("evento %d", i), "")
				require.LessOrEqual(t, log.Len(), activity.MaxEntries)
			}
			assert.Equal(t, min(n, activity.MaxEntries), log.Len())
			if n > 0 {
				assert.Equal(t, last, log.Recent(1)[0])
			}
		})
	}
}

func TestRecord_DescartaLasMasAntiguas(t *testing.T) {
	log := activity.NewLog(activity.WithIDGenerator(sequentialIDs()))
	for i := 0; i < 55; i++ {
		log.Record(entity.ActivityInfo, fmt.Sprintf("evento %d", i), "")
	}
	all := log.All()
	require.Len(t, all, activity.MaxEntries)
	assert.Equal(t, "evento 54", all[0].Title)
	assert.Equal(t, "evento 5", all[len(all)-1].Title, "las 5 más antiguas deben descartarse")
}

func TestRecent_LimitesYCopia(t *testing.T) {
	log := activity.NewLog()
	log.Record(entity.ActivityInfo, "uno", "")
	log.Record(entity.ActivityInfo, "dos", "")

	assert.Empty(t, log.Recent(0))
	assert.Empty(t, log.Recent(-3))
	assert.Len(t, log.Recent(10), 2)

	r := log.Recent(1)
	r[0].Title = "modificado"
	assert.Equal(t, "dos", log.Recent(1)[0].Title, "Recent no debe exponer el slice interno")
}

func TestRestore_TruncaA50(t *testing.T) {
	list := make([]entity.Activity, 70)
	for i := range list {
		list[i] = entity.Activity{ID: fmt.Sprintf("%d", i), Type: entity.ActivityInfo}
	}
	log := activity.NewLog()
	log.Restore(list)

	assert.Equal(t, activity.MaxEntries, log.Len())
	assert.Equal(t, "0", log.Recent(1)[0].ID)
}

func TestActivityType_Valid(t *testing.T) {
	assert.True(t, entity.ActivityAlert.Valid())
	assert.True(t, entity.ActivityCustomer.Valid())
	assert.False(t, entity.ActivityType("warning").Valid())
}
