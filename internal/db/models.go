package db

import (
	"time"
)

// User is an administrator account for the back end. Visitors never
// have accounts; they hold per-station edit passwords instead.
type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`

	Username string  `gorm:"uniqueIndex;size:64;not null" json:"username"`
	Email    *string `gorm:"size:255" json:"email"`

	// PasswordHash is the hex PBKDF2 digest of the password with Salt.
	// Both are replaced together on every password change.
	PasswordHash string `gorm:"size:64;not null" json:"-"`
	Salt         string `gorm:"size:64;not null" json:"-"`

	// SuperAdmin grants the right to manage other user accounts.
	SuperAdmin bool `gorm:"not null;default:false" json:"super_admin"`

	// Sessions owned by this user. Deleted with the user.
	Sessions []Session `gorm:"foreignKey:UserID" json:"-"`
}

// Session is a bearer login session. A row exists from successful login
// until it expires and is purged.
type Session struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Token  string `gorm:"uniqueIndex;size:64;not null" json:"-"`
	UserID uint   `gorm:"index;not null" json:"user_id"`

	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `gorm:"index;not null" json:"expires_at"`
}

// PermanentStationType classifies permanent stations (School,
// University, Cadet). Effectively immutable after first-run seeding.
type PermanentStationType struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name  string `gorm:"uniqueIndex;size:64;not null" json:"name"`
	Icon  string `gorm:"size:128;not null" json:"icon"`
	Color string `gorm:"size:32;not null" json:"color"`

	Stations []PermanentStation `gorm:"foreignKey:TypeID" json:"-"`
}

// Band is an amateur-radio band that events and temporary stations can
// be tagged with.
type Band struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;size:32;not null" json:"name"`
}

// Mode is an operating mode (CW, Phone, Data) that events and temporary
// stations can be tagged with.
type Mode struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;size:32;not null" json:"name"`
}

// Event is something like JOTA or a field day, to which temporary
// stations attach. Deleting an event deletes its stations: a temporary
// station without its event is meaningless.
type Event struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name      string    `gorm:"uniqueIndex;size:128;not null" json:"name"`
	StartTime time.Time `gorm:"not null" json:"start_time"`
	EndTime   time.Time `gorm:"index;not null" json:"end_time"`

	Icon          string `gorm:"size:128;not null" json:"icon"`
	Color         string `gorm:"size:32;not null" json:"color"`
	NotesTemplate string `gorm:"not null" json:"notes_template"`

	URLSlug *string `gorm:"uniqueIndex;size:128" json:"url_slug"`

	// Public has no column default on purpose: a default of true plus
	// GORM's zero-value skipping would turn an explicit false into true
	// on insert. Callers decide the default.
	Public    bool `gorm:"not null" json:"public"`
	RSGBEvent bool `gorm:"not null;default:false" json:"rsgb_event"`

	Stations []TemporaryStation `gorm:"foreignKey:EventID" json:"stations,omitempty"`
	Bands    []Band             `gorm:"many2many:event_bands" json:"bands"`
	Modes    []Mode             `gorm:"many2many:event_modes" json:"modes"`
}

// TemporaryStation is a station on the air for a limited period. If
// EventID is nil it is a generic special event station for an event the
// system does not know about.
type TemporaryStation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Callsign string `gorm:"size:32;not null" json:"callsign"`
	ClubName string `gorm:"size:128;not null" json:"club_name"`

	EventID *uint `gorm:"index" json:"event_id"`

	StartTime time.Time `gorm:"not null" json:"start_time"`
	EndTime   time.Time `gorm:"index;not null" json:"end_time"`

	LatitudeDegrees  float64 `gorm:"not null" json:"latitude_degrees"`
	LongitudeDegrees float64 `gorm:"not null" json:"longitude_degrees"`

	Notes string `json:"notes"`

	WebsiteURL     *string `gorm:"size:255" json:"website_url"`
	Email          *string `gorm:"size:255" json:"email"`
	PhoneNumber    *string `gorm:"size:64" json:"phone_number"`
	QRZURL         *string `gorm:"size:255" json:"qrz_url"`
	SocialMediaURL *string `gorm:"size:255" json:"social_media_url"`

	RSGBAttending bool `gorm:"not null;default:false" json:"rsgb_attending"`

	// Approved gates public visibility. Visitor submissions start
	// unapproved and are hidden from the map until an admin approves.
	Approved bool `gorm:"not null;default:false" json:"approved"`

	// EditPassword is generated at creation and shown to the submitter
	// once. It may be rotated but never cleared. Only admin
	// serialization carries it; public reads go through DTOs that omit
	// it.
	EditPassword string `gorm:"size:16;not null" json:"edit_password"`

	Event *Event `json:"event,omitempty"`
	Bands []Band `gorm:"many2many:temporary_station_bands" json:"bands"`
	Modes []Mode `gorm:"many2many:temporary_station_modes" json:"modes"`
}

// PermanentStation is a station permanently based at a school,
// university or cadet unit.
type PermanentStation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Callsign string `gorm:"size:32;not null" json:"callsign"`
	ClubName string `gorm:"size:128;not null" json:"club_name"`

	TypeID *uint `gorm:"index" json:"type_id"`

	LatitudeDegrees  float64 `gorm:"not null" json:"latitude_degrees"`
	LongitudeDegrees float64 `gorm:"not null" json:"longitude_degrees"`

	MeetingWhen  string `gorm:"not null" json:"meeting_when"`
	MeetingWhere string `gorm:"not null" json:"meeting_where"`

	Notes string `json:"notes"`

	WebsiteURL     *string `gorm:"size:255" json:"website_url"`
	Email          *string `gorm:"size:255" json:"email"`
	PhoneNumber    *string `gorm:"size:64" json:"phone_number"`
	QRZURL         *string `gorm:"size:255" json:"qrz_url"`
	SocialMediaURL *string `gorm:"size:255" json:"social_media_url"`

	Approved     bool   `gorm:"not null;default:false" json:"approved"`
	EditPassword string `gorm:"size:16;not null" json:"edit_password"`

	Type *PermanentStationType `gorm:"foreignKey:TypeID" json:"type,omitempty"`
}
