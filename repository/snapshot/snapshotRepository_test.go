package snapshot

import (
	"testing"

	"carrental/model"
	"carrental/util/datex"

	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)
	require.False(t, store.Exists())

	v, err := model.NewMotorcycle("MOTO1", "Yamaha", "MT-07", model.CategoryStandard, 35, 2022, "EF-456-GH", 8000,
		model.MotorcycleSpec{EngineSize: 689, Style: "roadster"})
	require.NoError(t, err)
	v.SendToMaintenance("revision", datex.NewDate(2026, 1, 3))
	v.CompleteMaintenance("revision faite", 150, datex.NewDate(2026, 1, 4))

	c := model.NewCustomer("CUST1", "Marie", "Dupont",
		datex.NewDate(1990, 4, 2), "123456789",
		[]string{"B", "A"}, datex.NewDate(2010, 4, 2),
		"marie.dupont@example.com", "0601020304", "31000 Toulouse")
	c.AddRental("R1")

	r, err := model.NewRental("R1", "CUST1", "MOTO1",
		datex.NewDate(2026, 1, 5), datex.NewDate(2026, 1, 11), 35, 8000)
	require.NoError(t, err)
	r.ApplyDiscount(0.05)
	r.Notes = "casque fourni"

	require.NoError(t, store.SaveAll(
		[]*model.Vehicle{v}, []*model.Customer{c}, []*model.Rental{r}))
	require.True(t, store.Exists())

	vs, cs, rs, err := store.LoadAll()
	require.NoError(t, err)
	require.Len(t, vs, 1)
	require.Len(t, cs, 1)
	require.Len(t, rs, 1)

	require.Equal(t, v, vs[0])
	require.Equal(t, c, cs[0])
	require.Equal(t, r, rs[0])

	// derived values recompute identically after the reload
	require.Equal(t, r.BaseCost(), rs[0].BaseCost())
	require.Equal(t, r.TotalCost(), rs[0].TotalCost())
	require.Equal(t, v.RequiredLicense(), vs[0].RequiredLicense())
	require.Equal(t, v.NeedsMaintenance(0), vs[0].NeedsMaintenance(0))
}

func TestLoadAll_FreshDirIsEmpty(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	vs, cs, rs, err := store.LoadAll()
	require.NoError(t, err)
	require.Empty(t, vs)
	require.Empty(t, cs)
	require.Empty(t, rs)
}
