package model

// GradeLevel is the school level a student profile is pitched at.
type GradeLevel string

const (
	P3   GradeLevel = "P3"
	P4   GradeLevel = "P4"
	P5   GradeLevel = "P5"
	P6   GradeLevel = "P6"
	Sec1 GradeLevel = "Sec1"
	Sec2 GradeLevel = "Sec2"
	Sec3 GradeLevel = "Sec3"
	Sec4 GradeLevel = "Sec4"
)

var gradeLevels = map[GradeLevel]bool{
	P3: true, P4: true, P5: true, P6: true,
	Sec1: true, Sec2: true, Sec3: true, Sec4: true,
}

func (l GradeLevel) Valid() bool {
	return gradeLevels[l]
}

// StudentProfile is a child account owned by exactly one parent user.
// Students authenticate with the join code instead of credentials.
// swagger:model StudentProfile
type StudentProfile struct {
	BaseModel
	ParentID uint       `gorm:"index;not null" json:"parent_id"`
	Parent   User       `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Name     string     `gorm:"size:100;not null" json:"name"`
	Level    GradeLevel `gorm:"size:10;not null" json:"level"`
	JoinCode string     `gorm:"size:6;uniqueIndex;not null" json:"join_code"`
	XP       int        `gorm:"default:0" json:"xp"`
	Streak   int        `gorm:"default:0" json:"streak"`
}

func (StudentProfile) TableName() string {
	return "student_profiles"
}
