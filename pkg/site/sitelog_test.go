package site

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDecodeSitelog(t *testing.T) {
	assert := assert.New(t)

	site, err := DecodeSitelogFile("testdata/kirs00swe_20210812.log")
	assert.NoError(err)

	// block 0
	assert.Equal("Jane Doe", site.FormInfo.PreparedBy)
	assert.Equal(time.Date(2021, 8, 12, 0, 0, 0, 0, time.UTC), site.FormInfo.DatePrepared)
	assert.Equal("UPDATE", site.FormInfo.ReportType)

	// block 1
	assert.Equal("Kiruna", site.Ident.Name)
	assert.Equal("KIRS", site.Ident.FourCharacterID)
	assert.Equal("10422M001", site.Ident.DOMESNumber)
	assert.Equal("", site.Ident.CDPNumber, "template hint maps to empty")
	assert.Equal("PILLAR", site.Ident.MonumentDescription)
	assert.Equal(3.0, site.Ident.HeightOfMonument)
	assert.Equal(2.0, site.Ident.FoundationDepth)
	assert.Equal(time.Date(2015, 6, 1, 0, 0, 0, 0, time.UTC), site.Ident.DateInstalled)
	assert.Equal("KIRS", site.StationID())
	assert.Equal("KIRS 10422M001", site.StationName())

	// block 2
	assert.Equal("Kiruna", site.Location.City)
	assert.Equal("Sweden", site.Location.Country)
	assert.Equal("EURASIAN", site.Location.TectonicPlate)
	cart := site.Location.ApproximatePosition.CartesianPosition
	assert.Equal([3]float64{2251420.8, 862817.2, 5885476.7}, cart.Coordinates)
	geod := site.Location.ApproximatePosition.GeodeticPosition
	assert.Equal(391.1, geod.Coordinates[2])

	// block 3: template section 3.x must not produce a receiver
	if !assert.Len(site.Receivers, 2) {
		t.FailNow()
	}
	recv := site.Receivers[0]
	assert.Equal("TRIMBLE NETR9", recv.Type)
	assert.Equal("SN-5034K21", recv.SerialNum)
	assert.Equal("5.22", recv.Firmware)
	assert.Equal(Systems{SysGPS, SysGLO}, recv.SatSystems)
	assert.Equal(time.Date(2015, 6, 1, 0, 0, 0, 0, time.UTC), recv.DateInstalled)
	assert.Equal(time.Date(2019, 3, 10, 9, 30, 0, 0, time.UTC), recv.DateRemoved)
	recv = site.Receivers[1]
	assert.Equal("SEPT POLARX5", recv.Type)
	assert.Equal(Systems{SysGPS, SysGLO, SysGAL}, recv.SatSystems)
	assert.True(recv.DateRemoved.IsZero(), "open removal date")

	// block 4
	if !assert.Len(site.Antennas, 2) {
		t.FailNow()
	}
	ant := site.Antennas[0]
	assert.Equal("TRM59800.00     SCIS", ant.Type, "antenna type keeps its 20 char layout")
	assert.Equal("SCIS", ant.Radome)
	assert.Equal("1441031064", ant.SerialNum)
	assert.Equal(0.083, ant.EccUp)
	assert.Equal(0.001, ant.EccNorth)
	assert.Equal(0.002, ant.EccEast)
	assert.Equal(30.0, ant.CableLength)
	assert.Equal(time.Date(2019, 3, 10, 9, 0, 0, 0, time.UTC), ant.DateRemoved)

	// block 5
	if assert.Len(site.LocalTies, 1) {
		ties := site.LocalTies[0]
		assert.Equal("KIR0", ties.MarkerName)
		assert.Equal("VLBI", ties.MarkerUsage)
		assert.Equal(DeltaXYZ{Dx: 412.123, Dy: -101.02, Dz: 35.7}, ties.DifferentialFromMarker)
		assert.Equal(2.0, ties.Accuracy)
		assert.Equal(time.Date(2016, 5, 20, 0, 0, 0, 0, time.UTC), ties.DateMeasured)
	}

	// block 6
	if assert.Len(site.FrequencyStandards, 1) {
		freq := site.FrequencyStandards[0]
		assert.Equal("INTERNAL", freq.Type)
		assert.Equal(time.Date(2015, 6, 1, 0, 0, 0, 0, time.UTC), freq.EffectiveDates.From)
		assert.True(freq.EffectiveDates.To.IsZero())
	}

	// block 7: NONE means no collocation
	assert.Empty(site.Collocations)

	// block 8
	if assert.Len(site.HumiditySensors, 1) {
		sensor := site.HumiditySensors[0]
		assert.Equal("HMP155", sensor.Type)
		assert.Equal("Vaisala", sensor.Manufacturer)
		assert.Equal("K5150012", sensor.SerialNumber)
		assert.Equal(60.0, sensor.DataSamplingInterval)
		assert.Equal(1.7, sensor.Accuracy)
		assert.Equal("NATURAL", sensor.Aspiration)
		assert.Equal(-1.2, sensor.HeightDiffToAntenna)
		assert.Equal(time.Date(2020, 4, 15, 0, 0, 0, 0, time.UTC), sensor.CalibrationDate)
	}

	// block 9
	assert.Empty(site.RadioInterferences)
	if assert.Len(site.MultipathSources, 1) {
		assert.Equal("METAL ROOF", site.MultipathSources[0].Source)
	}

	// block 10
	if assert.Len(site.LocalEpisodicEffects, 1) {
		eff := site.LocalEpisodicEffects[0]
		assert.Equal("TREE CLEARING", eff.Event)
		assert.Equal(time.Date(2018, 1, 10, 0, 0, 0, 0, time.UTC), eff.EffectiveDates.From)
		assert.Equal(time.Date(2018, 1, 20, 0, 0, 0, 0, time.UTC), eff.EffectiveDates.To)
	}

	// block 11: modern contact agency layout
	if assert.Len(site.ContactAgencies, 1) {
		agency := site.ContactAgencies[0]
		assert.Equal("Lantmateriet", agency.Name)
		assert.Equal("LM", agency.Abbreviation)
		assert.Equal("Box 823 SE-80182 Gavle", agency.MailingAddress)
		if assert.Len(agency.Contacts, 1) {
			assert.Equal("Sven Svensson", agency.Contacts[0].Name)
			assert.Equal("sven.svensson@lm.se", agency.Contacts[0].Email)
		}
	}

	// block 12 is all template text here
	assert.Empty(site.ResponsibleAgencies)

	// block 13: graphics are cut off
	assert.Equal("BKG", site.MoreInfo.PrimaryDataCenter)
	assert.Equal("ROB", site.MoreInfo.SecondaryDataCenter)
	assert.NotContains(site.MoreInfo.Notes, "---")
}

func TestDecodeSitelog_LegacyAgencyBlocks(t *testing.T) {
	assert := assert.New(t)

	const log = `1.   Site Identification of the GNSS Monument

     Site Name                : Oldtown
     Four Character ID        : OLDT

11.  Signal Obstructions

11.1 Signal Obstructions     : TREES
     Effective Dates          : 1998-01-01/CCYY-MM-DD

12.  Local Episodic Effects

12.1 Date                     : 1999-05-01/1999-05-10
     Event                    : CONSTRUCTION
`

	site, err := DecodeSitelog(strings.NewReader(log))
	assert.NoError(err)

	if assert.Len(site.SignalObstructions, 1) {
		assert.Equal("TREES", site.SignalObstructions[0].Source)
	}
	if assert.Len(site.LocalEpisodicEffects, 1) {
		assert.Equal("CONSTRUCTION", site.LocalEpisodicEffects[0].Event)
	}
	assert.Empty(site.ContactAgencies)
	assert.Empty(site.ResponsibleAgencies)
	assert.NotEmpty(site.Warnings, "legacy interpretation is reported")
}

func TestParseSatSystems(t *testing.T) {
	assert := assert.New(t)

	syss, err := ParseSatSystems("GPS+GLONASS+GALILEO")
	assert.NoError(err)
	assert.Equal(Systems{SysGPS, SysGLO, SysGAL}, syss)
	assert.Equal("GPS+GLO+GAL", syss.String())

	syss, err = ParseSatSystems("GPS/GLONASS")
	assert.NoError(err)
	assert.Equal(Systems{SysGPS, SysGLO}, syss)

	_, err = ParseSatSystems("GPS+FOO")
	assert.Error(err)
}
