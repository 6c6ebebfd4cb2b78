package entity

type TrackingEvent struct {
	Base
	Event      string `gorm:"index"`
	Properties Map    `gorm:"type:json"`
}
