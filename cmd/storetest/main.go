// Command storetest smoke-tests both catalog stores end to end: import a
// catalog, read it back and generate a rolelist from what was stored.
package main

import (
	"fmt"
	"log"

	"github.com/kittclouds/rolegen/internal/store"
	"github.com/kittclouds/rolegen/pkg/catalog"
	"github.com/kittclouds/rolegen/pkg/generator"
)

var sample = &catalog.File{
	Factions:      []catalog.Faction{{ID: 1, Name: "Town"}, {ID: 2, Name: "Mafia"}},
	Subalignments: []catalog.Subalignment{{ID: 10, Name: "Protective"}, {ID: 11, Name: "Killing"}},
	Roles: []catalog.FileRole{
		{ID: 100, Name: "Doctor", Faction: 1, Subalignment: 10, Labels: []string{"healer"}},
		{ID: 101, Name: "Vigilante", Faction: 1, Subalignment: 11, Labels: []string{"killer"}},
		{ID: 110, Name: "Mafioso", Faction: 2, Subalignment: 11, Labels: []string{"killer"}},
	},
}

func main() {
	fmt.Println("Testing MemStore...")
	exercise(store.NewMemStore())

	fmt.Println("\nTesting SQLiteStore...")
	s, err := store.NewSQLiteStore()
	if err != nil {
		log.Fatalf("NewSQLiteStore failed: %v", err)
	}
	exercise(s)

	fmt.Println("\n✅ All checks passed!")
}

func exercise(s store.Storer) {
	defer s.Close()

	if err := store.Import(s, sample); err != nil {
		log.Fatalf("Import failed: %v", err)
	}
	fmt.Println("  ✓ Import works")

	count, err := s.CountRoles()
	if err != nil {
		log.Fatalf("CountRoles failed: %v", err)
	}
	if count != len(sample.Roles) {
		log.Fatalf("CountRoles expected %d, got %d", len(sample.Roles), count)
	}
	fmt.Println("  ✓ CountRoles works")

	r, err := s.GetRoleByName("  VIGILANTE ")
	if err != nil {
		log.Fatalf("GetRoleByName failed: %v", err)
	}
	if r == nil || r.ID != 101 {
		log.Fatalf("GetRoleByName returned %+v", r)
	}
	fmt.Println("  ✓ GetRoleByName works")

	roles, err := store.Roles(s)
	if err != nil {
		log.Fatalf("Roles failed: %v", err)
	}
	picked, err := generator.NewSeeded(1).GenerateScript("$Town\nkiller\n-ANY", roles)
	if err != nil {
		log.Fatalf("GenerateScript failed: %v", err)
	}
	if len(picked) != 3 {
		log.Fatalf("GenerateScript expected 3 roles, got %d", len(picked))
	}
	fmt.Println("  ✓ GenerateScript works on stored roles")
}
