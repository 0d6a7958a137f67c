package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

/* =======================
   MARKETING CONTENT
======================= */

// CTAButton is a repeatable call-to-action entry on a hero section. Icon
// must name an entry in the icon registry.
type CTAButton struct {
	ID    string `bson:"id" json:"id"`
	Label string `bson:"label" json:"label"`
	Link  string `bson:"link" json:"link"`
	Icon  string `bson:"icon,omitempty" json:"icon,omitempty"`
}

type HeroSection struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Subtitle    string             `bson:"subtitle,omitempty" json:"subtitle,omitempty"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	CTAButtons  []CTAButton        `bson:"ctaButtons" json:"ctaButtons"`
	Order       int                `bson:"order" json:"order"`
	IsActive    bool               `bson:"isActive" json:"isActive"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ProjectMetric is a repeatable label/value pair shown on a project card.
type ProjectMetric struct {
	Label string `bson:"label" json:"label"`
	Value string `bson:"value" json:"value"`
}

type Project struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	ServiceID   string             `bson:"serviceId" json:"serviceId"`
	Tags        StringList         `bson:"tags" json:"tags"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	Metrics     []ProjectMetric    `bson:"metrics" json:"metrics"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ContactEntry is a repeatable contact line on the about/contact block.
type ContactEntry struct {
	Type  string `bson:"type" json:"type"`
	Value string `bson:"value" json:"value"`
	Label string `bson:"label,omitempty" json:"label,omitempty"`
}

type AboutContact struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Heading   string             `bson:"heading" json:"heading"`
	Body      string             `bson:"body" json:"body"`
	Contacts  []ContactEntry     `bson:"contacts" json:"contacts"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type ContactHero struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title           string             `bson:"title" json:"title"`
	Subtitle        string             `bson:"subtitle,omitempty" json:"subtitle,omitempty"`
	BackgroundImage string             `bson:"backgroundImage,omitempty" json:"backgroundImage,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Initiative is a repeatable entry on future goals and roadmap phases.
type Initiative struct {
	Title       string `bson:"title" json:"title"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
}

type FutureGoal struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	TargetDate  *time.Time         `bson:"targetDate,omitempty" json:"targetDate,omitempty"`
	Initiatives []Initiative       `bson:"initiatives" json:"initiatives"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type RoadmapPhase struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Icon        string             `bson:"icon" json:"icon"`
	Order       int                `bson:"order" json:"order"`
	Initiatives []Initiative       `bson:"initiatives" json:"initiatives"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type VideoTestimonial struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Role      string             `bson:"role,omitempty" json:"role,omitempty"`
	Quote     string             `bson:"quote,omitempty" json:"quote,omitempty"`
	VideoURL  string             `bson:"videoUrl" json:"videoUrl"`
	Thumbnail string             `bson:"thumbnail,omitempty" json:"thumbnail,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
