package world

const DefaultInventoryCapacity = 28

type InventoryLevel string

const (
	InventoryPlenty InventoryLevel = "plenty"
	InventoryLow    InventoryLevel = "low"
	InventoryFull   InventoryLevel = "full"
)

type Inventory struct {
	Used     int `json:"used"`
	Capacity int `json:"capacity"`
}

func (i Inventory) Free() int {
	capacity := i.Capacity
	if capacity <= 0 {
		capacity = DefaultInventoryCapacity
	}
	free := capacity - i.Used
	if free < 0 {
		return 0
	}
	return free
}

func (i Inventory) Full() bool {
	return i.Free() <= 0
}

func (i Inventory) Level() InventoryLevel {
	switch free := i.Free(); {
	case free > 5:
		return InventoryPlenty
	case free > 0:
		return InventoryLow
	default:
		return InventoryFull
	}
}
