// internal/model/city.go
package model

// City is one persisted record. ID is assigned by the store and never changes.
type City struct {
	ID   int
	Name string
}

// CityCollection is the full ordered set of cities, in document order.
type CityCollection []City

// NextID returns max(ids)+1, or 1 for an empty collection.
// Ids may be reused after the highest one is deleted.
func (c CityCollection) NextID() int {
	highest := 0
	for _, city := range c {
		if city.ID > highest {
			highest = city.ID
		}
	}
	return highest + 1
}

// IndexOf returns the position of the city with the given id, or -1.
func (c CityCollection) IndexOf(id int) int {
	for i, city := range c {
		if city.ID == id {
			return i
		}
	}
	return -1
}
