package model

import "slices"

// Doctor is a directory entry. Doctors are seeded at startup and never change.
type Doctor struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Specialty      string   `json:"specialty"`
	Experience     string   `json:"experience"`
	Image          string   `json:"image"`
	Email          string   `json:"email"`
	AvailableSlots []string `json:"available_slots"`
}

func (d *Doctor) HasSlot(slot string) bool {
	return slices.Contains(d.AvailableSlots, slot)
}

// Clone returns a deep copy so callers cannot mutate the directory's seed data.
func (d *Doctor) Clone() *Doctor {
	if d == nil {
		return nil
	}
	c := *d
	c.AvailableSlots = slices.Clone(d.AvailableSlots)
	return &c
}
