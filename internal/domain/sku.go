package domain

// SKU represents one inventory item type to be slotted. All dimensions
// are inches, weights are pounds. Values are immutable once loaded.
type SKU struct {
	SKUID        string  `json:"skuId" bson:"skuId"`
	Description  string  `json:"description" bson:"description"`
	Length       float64 `json:"lengthIn" bson:"lengthIn"`
	Width        float64 `json:"widthIn" bson:"widthIn"`
	Height       float64 `json:"heightIn" bson:"heightIn"`
	Weight       float64 `json:"weightLbs" bson:"weightLbs"`
	Eaches       int     `json:"eaches" bson:"eaches"`
	WeeklyPicks  int     `json:"weeklyPicks" bson:"weeklyPicks"`
	ConfigID     int     `json:"trayConfigId" bson:"trayConfigId"`
	PickPriority int     `json:"pickPriority" bson:"pickPriority"`
}

// UnitVolume returns the volume of a single unit in cubic inches.
func (s SKU) UnitVolume() float64 {
	return s.Length * s.Width * s.Height
}

// TotalVolume returns the volume of all eaches stored in one cell.
func (s SKU) TotalVolume() float64 {
	return s.UnitVolume() * float64(s.Eaches)
}

// TotalWeight returns the weight the SKU puts on its cell = weight * eaches.
func (s SKU) TotalWeight() float64 {
	return s.Weight * float64(s.Eaches)
}
