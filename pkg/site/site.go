// Package site handles GNSS station metadata: parsing IGS sitelogs,
// reconciling the equipment history and writing Bernese STA-files.
package site

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Site holds the content of one sitelog, i.e. one GNSS station with its
// identification, location and complete equipment history.
type Site struct {
	FormInfo FormInformation
	Ident    Identification
	Location Location

	Receivers []*Receiver `validate:"required,min=1,dive,required"`
	Antennas  []*Antenna  `validate:"required,min=1,dive,required"`

	LocalTies            []LocalTies
	FrequencyStandards   []FrequencyStandard
	Collocations         []Collocation
	HumiditySensors      []HumiditySensor
	PressureSensors      []PressureSensor
	TemperatureSensors   []TemperatureSensor
	WaterVaporSensors    []WaterVaporSensor
	RadioInterferences   []RadioInterference
	MultipathSources     []MultipathSource
	SignalObstructions   []SignalObstruction
	LocalEpisodicEffects []LocalEpisodicEffect
	ContactAgencies      []Agency
	ResponsibleAgencies  []Agency
	MoreInfo             MoreInformation

	// Warnings collects non fatal findings from parsing and cleaning.
	Warnings []error
}

// FormInformation stores the sitelog form metadata, block 0.
type FormInformation struct {
	PreparedBy   string
	DatePrepared time.Time `validate:"required"`
	ReportType   string // NEW/UPDATE
}

// Identification holds the site identification, block 1.
type Identification struct {
	Name                   string `validate:"required"` // City or nearest town
	FourCharacterID        string
	NineCharacterID        string
	MonumentInscription    string
	DOMESNumber            string // IERS Domes number, A9
	CDPNumber              string
	MonumentDescription    string // PILLAR/BRASS PLATE/STEEL MAST/etc
	HeightOfMonument       float64
	MonumentFoundation     string
	FoundationDepth        float64
	MarkerDescription      string
	DateInstalled          time.Time
	GeologicCharacteristic string
	BedrockType            string
	BedrockCondition       string
	FractureSpacing        string
	FaultZonesNearby       string
	DistanceActivity       string
	Notes                  string
}

// Location holds the site location, block 2.
type Location struct {
	City                string
	State               string
	Country             string
	TectonicPlate       string
	ApproximatePosition ApproximatePosition
	Notes               string
}

// CartesianPosition is a point given by its ECEF XYZ-coordinates, in meters.
type CartesianPosition struct {
	Coordinates [3]float64
}

// GeodeticPosition is a point given by lat, lon and ellipsoidal height.
type GeodeticPosition struct {
	Coordinates [3]float64
}

// ApproximatePosition stores the approximate ITRF position of the site.
type ApproximatePosition struct {
	CartesianPosition CartesianPosition
	GeodeticPosition  GeodeticPosition
}

// Receiver is one GNSS receiver deployment, sitelog block 3.x.
type Receiver struct {
	Type                string `validate:"required"`
	SatSystems          Systems
	SerialNum           string
	Firmware            string
	ElevationCutoff     float64 // degree
	TemperatureStabiliz string  // none or tolerance in degrees C
	DateInstalled       time.Time
	DateRemoved         time.Time
	Notes               string
}

// Antenna is one GNSS antenna deployment, sitelog block 4.x.
type Antenna struct {
	Type                   string `validate:"required"`
	Radome                 string
	RadomeSerialNum        string
	SerialNum              string
	ReferencePoint         string
	EccUp                  float64 // meter
	EccNorth               float64
	EccEast                float64
	AlignmentFromTrueNorth float64 // deg; + is clockwise/east
	CableType              string
	CableLength            float64 // meter
	DateInstalled          time.Time
	DateRemoved            time.Time
	Notes                  string
}

// DeltaXYZ stores deltas to a cartesian coordinate, in meters.
type DeltaXYZ struct {
	Dx, Dy, Dz float64
}

// EffectiveDates holds a start- and an optional enddate.
type EffectiveDates struct {
	From time.Time
	To   time.Time
}

// LocalTies stores one surveyed local tie, block 5.x.
type LocalTies struct {
	MarkerName             string
	MarkerUsage            string // SLR/VLBI/LOCAL CONTROL/FOOTPRINT/etc
	MarkerCDPNumber        string
	MarkerDOMESNumber      string
	DifferentialFromMarker DeltaXYZ
	Accuracy               float64 // mm
	SurveyMethod           string
	DateMeasured           time.Time
	Notes                  string
}

// FrequencyStandard describes the internal or external frequency input, block 6.x.
type FrequencyStandard struct {
	Type           string // INTERNAL or EXTERNAL H-MASER/CESIUM/etc
	InputFrequency string
	EffectiveDates EffectiveDates
	Notes          string
}

// Collocation describes collocated instruments, block 7.x.
type Collocation struct {
	InstrumentType string // GPS/GLONASS/DORIS/SLR/VLBI/etc
	Status         string // PERMANENT/MOBILE
	EffectiveDates EffectiveDates
	Notes          string
}

// HumiditySensor, block 8.1.x.
type HumiditySensor struct {
	Type                 string
	Manufacturer         string
	SerialNumber         string
	DataSamplingInterval float64 // sec
	Accuracy             float64 // % rel h
	Aspiration           string
	HeightDiffToAntenna  float64 // meter
	CalibrationDate      time.Time
	EffectiveDates       EffectiveDates
	Notes                string
}

// PressureSensor, block 8.2.x.
type PressureSensor struct {
	Type                 string
	Manufacturer         string
	SerialNumber         string
	DataSamplingInterval float64
	Accuracy             float64 // hPa
	HeightDiffToAntenna  float64
	CalibrationDate      time.Time
	EffectiveDates       EffectiveDates
	Notes                string
}

// TemperatureSensor, block 8.3.x.
type TemperatureSensor struct {
	Type                 string
	Manufacturer         string
	SerialNumber         string
	DataSamplingInterval float64
	Accuracy             float64 // deg C
	Aspiration           string
	HeightDiffToAntenna  float64
	CalibrationDate      time.Time
	EffectiveDates       EffectiveDates
	Notes                string
}

// WaterVaporSensor, block 8.4.x.
type WaterVaporSensor struct {
	Type                string
	Manufacturer        string
	SerialNumber        string
	DistanceToAntenna   float64
	HeightDiffToAntenna float64
	CalibrationDate     time.Time
	EffectiveDates      EffectiveDates
	Notes               string
}

// RadioInterference notes radio interferences, block 9.1.x.
type RadioInterference struct {
	Source               string
	ObservedDegradations string
	EffectiveDates       EffectiveDates
	Notes                string
}

// MultipathSource notes multipath sources, block 9.2.x.
type MultipathSource struct {
	Source         string
	EffectiveDates EffectiveDates
	Notes          string
}

// SignalObstruction notes signal obstructions, block 9.3.x. Very old
// sitelogs carried these in block 11.
type SignalObstruction struct {
	Source         string
	EffectiveDates EffectiveDates
	Notes          string
}

// LocalEpisodicEffect is a local event that possibly affects data quality,
// block 10.x. Very old sitelogs carried these in block 12.
type LocalEpisodicEffect struct {
	EffectiveDates EffectiveDates
	Event          string // TREE CLEARING/CONSTRUCTION/etc
}

// Agency describes an agency with its contact persons, blocks 11 and 12.
type Agency struct {
	Name           string
	Abbreviation   string
	MailingAddress string
	Contacts       []Contact
	Notes          string
}

// Contact is one contact person.
type Contact struct {
	Name               string
	TelephonePrimary   string
	TelephoneSecondary string
	Fax                string
	Email              string
}

// MoreInformation about data centers, pictures etc., block 13.
type MoreInformation struct {
	PrimaryDataCenter     string
	SecondaryDataCenter   string
	URLForMoreInformation string
	SiteMap               string
	SiteDiagram           string
	HorizonMask           string
	MonumentDescription   string
	SitePictures          string
	Notes                 string
}

// System is a satellite system.
type System int

// Available satellite systems.
const (
	SysGPS System = iota + 1
	SysGLO
	SysGAL
	SysQZSS
	SysBDS
	SysIRNSS
	SysSBAS
)

func (sys System) String() string {
	return [...]string{"", "GPS", "GLO", "GAL", "QZSS", "BDS", "IRNSS", "SBAS"}[sys]
}

// Systems specifies a list of satellite systems.
type Systems []System

// String returns the contained systems in sitelog manner GPS+GLO+...
func (syss Systems) String() string {
	str := make([]string, 0, len(syss))
	for _, sys := range syss {
		str = append(str, sys.String())
	}
	return strings.Join(str, "+")
}

var satSysPerAbbr = map[string]System{
	"GPS": SysGPS, "GLO": SysGLO, "GAL": SysGAL, "QZSS": SysQZSS,
	"BDS": SysBDS, "IRNSS": SysIRNSS, "SBAS": SysSBAS,
}

// ParseSatSystems parses a sitelog satellite systems string like
// "GPS+GLONASS/GALILEO", with the long names folded to their abbreviations.
func ParseSatSystems(s string) (Systems, error) {
	r := strings.NewReplacer("/", "+", "GLONASS", "GLO", "GALILEO", "GAL", "BEIDOU", "BDS", "BeiDou", "BDS", "NavIC", "IRNSS")
	s = r.Replace(s)

	var syss Systems
	for _, v := range strings.Split(s, "+") {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		sys, exists := satSysPerAbbr[strings.ToUpper(v)]
		if !exists {
			return nil, fmt.Errorf("unknown satellite system: %s", v)
		}
		syss = append(syss, sys)
	}
	return syss, nil
}

// StationID returns the stations' identifier, preferring the four character
// ID. If that one is missing, the first four characters of the nine
// character ID are used. The ID is always uppercase.
func (s *Site) StationID() string {
	if id := strings.TrimSpace(s.Ident.FourCharacterID); id != "" {
		return strings.ToUpper(id)
	}
	if id := strings.TrimSpace(s.Ident.NineCharacterID); len(id) >= 4 {
		return strings.ToUpper(id[:4])
	}
	return ""
}

// StationName returns the name used in STA-files: the four character ID
// followed by the DOMES number, e.g. "BRUX 13101M010".
func (s *Site) StationName() string {
	id := s.StationID()
	if domes := strings.TrimSpace(s.Ident.DOMESNumber); domes != "" {
		return id + " " + domes
	}
	return id
}

func (s *Site) warnf(format string, a ...interface{}) {
	s.Warnings = append(s.Warnings, fmt.Errorf(format, a...))
}

// use a single instance of Validate, it caches struct info
var validate = validator.New()

// ValidateAndClean repairs the equipment history and validates the site
// data. As the input is often lousy, the lists are cleaned as much as
// possible before validating: equipment without an install date is dropped,
// duplicate install dates are made unique and missing removal dates are
// derived from the follow-up equipment.
func (s *Site) ValidateAndClean() error {
	s.cleanReceivers()
	s.cleanAntennas()
	return validate.Struct(s)
}
