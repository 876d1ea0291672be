package data

type Genre struct {
	ID   int64   `json:"id" gorm:"column:id;primaryKey"`
	Name *string `json:"name" gorm:"column:name;size:255"`
}

func (g Genre) RecordID() int64 { return g.ID }

func (Genre) TableName() string { return "genre" }

func (g Genre) Fields() map[string]any {
	return map[string]any{"name": g.Name}
}
