// Package testkit provides a small shared role catalog for package tests.
package testkit

import "github.com/kittclouds/rolegen/pkg/catalog"

var (
	Town  = catalog.Faction{ID: 1, Name: "Town"}
	Mafia = catalog.Faction{ID: 2, Name: "Mafia"}
	Coven = catalog.Faction{ID: 3, Name: "Coven"}

	Protective    = catalog.Subalignment{ID: 10, Name: "Protective"}
	Investigative = catalog.Subalignment{ID: 11, Name: "Investigative"}
	Killing       = catalog.Subalignment{ID: 12, Name: "Killing"}
	Support       = catalog.Subalignment{ID: 13, Name: "Support"}
	Evil          = catalog.Subalignment{ID: 14, Name: "Evil"}
)

// Roles returns a fresh copy of the fixture catalog.
//
//	100 Doctor        Town  Protective     [healer]
//	101 Bodyguard     Town  Protective     [killer, unique]
//	102 Sheriff       Town  Investigative  []
//	103 Vigilante     Town  Killing        [killer]
//	110 Godfather     Mafia Killing        [unique, leader]
//	111 Mafioso       Mafia Killing        [killer]
//	112 Consigliere   Mafia Support        [investigator]
//	120 Coven Leader  Coven Evil           [unique, leader]
func Roles() []catalog.Role {
	return []catalog.Role{
		{ID: 100, Name: "Doctor", Faction: Town, Subalignment: Protective, Labels: []string{"healer"}},
		{ID: 101, Name: "Bodyguard", Faction: Town, Subalignment: Protective, Labels: []string{"killer", "unique"}},
		{ID: 102, Name: "Sheriff", Faction: Town, Subalignment: Investigative},
		{ID: 103, Name: "Vigilante", Faction: Town, Subalignment: Killing, Labels: []string{"killer"}},
		{ID: 110, Name: "Godfather", Faction: Mafia, Subalignment: Killing, Labels: []string{"unique", "leader"}},
		{ID: 111, Name: "Mafioso", Faction: Mafia, Subalignment: Killing, Labels: []string{"killer"}},
		{ID: 112, Name: "Consigliere", Faction: Mafia, Subalignment: Support, Labels: []string{"investigator"}},
		{ID: 120, Name: "Coven Leader", Faction: Coven, Subalignment: Evil, Labels: []string{"unique", "leader"}},
	}
}

// Partial returns the projected fixture catalog.
func Partial() []catalog.PartialRole {
	return catalog.Project(Roles())
}

// IDs extracts role IDs in order.
func IDs(roles []catalog.PartialRole) []int64 {
	ids := make([]int64, len(roles))
	for i, r := range roles {
		ids[i] = r.ID
	}
	return ids
}

// RoleIDs extracts full role IDs in order.
func RoleIDs(roles []catalog.Role) []int64 {
	ids := make([]int64, len(roles))
	for i, r := range roles {
		ids[i] = r.ID
	}
	return ids
}
