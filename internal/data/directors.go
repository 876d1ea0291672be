package data

type Director struct {
	ID   int64   `json:"id" gorm:"column:id;primaryKey"`
	Name *string `json:"name" gorm:"column:name;size:255"`
}

func (d Director) RecordID() int64 { return d.ID }

func (Director) TableName() string { return "director" }

func (d Director) Fields() map[string]any {
	return map[string]any{"name": d.Name}
}
