package site

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// The sitelog format is a loosely structured text format with numbered
// sections ("1.", "3.2", "8.1.1") holding "Label : value" pairs. The decoder
// first splits the input into section blocks and then hands every block to
// an extractor with an ordered field table. One malformed section must never
// lose the rest of a station's history, so extraction problems end up as
// warnings on the Site, not as errors.

// headerPattern matches a section header at the begin of a line, up to
// three levels deep. Template sections use "x" as last level.
var headerPattern = regexp.MustCompile(`^(\d{1,2})\.(?:(\d{1,2}|[xX]))?(?:\.(\d{1,2}|[xX]))?\s`)

// maxLabelWidth is the column up to which a colon separates label and
// value. Colons further right belong to the value of a multiline field.
const maxLabelWidth = 34

// block is one numbered sitelog section with its accumulated lines.
type block struct {
	tag   string // "3.1", "8.1.2"
	major int
	sub   string // "1", "x" or ""
	lines []string
}

func (b block) isTemplate() bool {
	return strings.HasSuffix(strings.ToLower(b.tag), ".x")
}

// field maps one label to a struct field setter. The tables built from it
// replace scattered per-field regexes, see the extractors below.
type field struct {
	label     string
	multiline bool
	set       func(v string)
}

// DecodeSitelogFile reads and parses the sitelog with the given path.
// A missing file is the only fatal condition.
func DecodeSitelogFile(path string) (*Site, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeSitelog(f)
}

// DecodeSitelog reads and parses a sitelog input stream and returns it as a
// Site. Call ValidateAndClean afterwards to repair the equipment history.
func DecodeSitelog(r io.Reader) (*Site, error) {
	blocks, err := splitBlocks(r)
	if err != nil {
		return nil, err
	}

	s := &Site{}
	for _, b := range blocks {
		if b.isTemplate() {
			continue
		}
		switch b.major {
		case 0:
			s.decodeForm(b)
		case 1:
			s.decodeIdent(b)
		case 2:
			s.decodeLocation(b)
		case 3:
			s.decodeReceiver(b)
		case 4:
			s.decodeAntenna(b)
		case 5:
			s.decodeLocalTies(b)
		case 6:
			s.decodeFrequencyStandard(b)
		case 7:
			s.decodeCollocation(b)
		case 8:
			s.decodeMeteoSensor(b)
		case 9:
			s.decodeInterference(b)
		case 10:
			s.decodeEpisodicEffect(b)
		case 11, 12:
			s.decodeAgency(b)
		case 13:
			s.decodeMoreInfo(b)
		}
	}

	if s.StationID() == "" {
		s.warnf("no four or nine character ID found")
	} else if s.Ident.FourCharacterID == "" {
		s.warnf("four character ID missing, derived %q from nine character ID", s.StationID())
	}

	return s, nil
}

// splitBlocks scans the input and groups the lines by numbered section.
// Line endings are normalized, lines before the first header are dropped.
func splitBlocks(r io.Reader) ([]block, error) {
	var blocks []block
	cur := block{major: -1}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")

		if res := headerPattern.FindStringSubmatch(line); res != nil {
			if cur.major >= 0 {
				blocks = append(blocks, cur)
			}
			major, err := strconv.Atoi(res[1])
			if err != nil {
				major = -1
			}
			tag := res[1]
			if res[2] != "" {
				tag += "." + res[2]
			}
			if res[3] != "" {
				tag += "." + res[3]
			}
			cur = block{tag: tag, major: major, sub: res[2]}
			// The header line itself may carry the first label of a
			// repeatable block, e.g. "3.1  Receiver Type : ...".
			rest := strings.TrimPrefix(line, tag)
			rest = strings.TrimSpace(strings.TrimPrefix(rest, "."))
			if strings.Contains(rest, ":") {
				cur.lines = append(cur.lines, rest)
			}
			continue
		}

		if cur.major >= 0 {
			cur.lines = append(cur.lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading sitelog: %w", err)
	}
	if cur.major >= 0 {
		blocks = append(blocks, cur)
	}
	return blocks, nil
}

// extractFields walks the block lines and applies the ordered field table.
// Labels match case-insensitively. Lines without a label within
// maxLabelWidth continue the last multiline field.
func (s *Site) extractFields(b block, fields []field) {
	var multiline *field
	for _, line := range b.lines {
		if strings.TrimSpace(line) == "" {
			multiline = nil
			continue
		}

		label, val, ok := splitLabel(line)
		if !ok {
			// no label: a subsection marker like "Primary Contact"
			multiline = nil
			continue
		}
		if label == "" {
			// continuation line, the colon is repeated without a label
			if multiline != nil {
				if v := cleanValue(val); v != "" {
					multiline.set(v)
				}
			}
			continue
		}

		matched := false
		for i := range fields {
			if strings.EqualFold(fields[i].label, label) {
				fields[i].set(cleanValue(val))
				if fields[i].multiline {
					multiline = &fields[i]
				} else {
					multiline = nil
				}
				matched = true
				break
			}
		}
		if !matched {
			multiline = nil
		}
	}
}

// splitLabel splits "Label : value". ok is false for lines that have no
// label, their full text is returned as value.
func splitLabel(line string) (label, val string, ok bool) {
	idx := strings.Index(line, ":")
	if idx < 0 || idx > maxLabelWidth {
		return "", strings.TrimSpace(line), false
	}
	return strings.TrimSpace(line[:idx]), strings.TrimSpace(line[idx+1:]), true
}

func (s *Site) setFloat(dst *float64, tag, label, v string) {
	if v == "" {
		return
	}
	fl, err := parseFloat(v)
	if err != nil {
		s.warnf("block %s: could not parse %q: %q", tag, label, v)
		return
	}
	*dst = fl
}

func (s *Site) decodeForm(b block) {
	f := &s.FormInfo
	s.extractFields(b, []field{
		{"Prepared by", false, func(v string) { f.PreparedBy = v }},
		{"Prepared by (full name)", false, func(v string) { f.PreparedBy = v }},
		{"Date Prepared", false, func(v string) { f.DatePrepared = parseDate(v) }},
		{"Report Type", false, func(v string) { f.ReportType = v }},
	})
}

func (s *Site) decodeIdent(b block) {
	id := &s.Ident
	s.extractFields(b, []field{
		{"Site Name", false, func(v string) { id.Name = v }},
		{"Four Character ID", false, func(v string) { id.FourCharacterID = v }},
		{"Nine Character ID", false, func(v string) { id.NineCharacterID = v }},
		{"Monument Inscription", false, func(v string) { id.MonumentInscription = v }},
		{"IERS DOMES Number", false, func(v string) {
			if v != "" && len(v) != 9 {
				s.warnf("block %s: IERS DOMES Number should have format A9: %q", b.tag, v)
			}
			id.DOMESNumber = v
		}},
		{"CDP Number", false, func(v string) { id.CDPNumber = v }},
		{"Monument Description", false, func(v string) { id.MonumentDescription = v }},
		{"Height of the Monument", false, func(v string) { s.setFloat(&id.HeightOfMonument, b.tag, "Height of the Monument", v) }},
		{"Monument Foundation", false, func(v string) { id.MonumentFoundation = v }},
		{"Foundation Depth", false, func(v string) { s.setFloat(&id.FoundationDepth, b.tag, "Foundation Depth", v) }},
		{"Marker Description", false, func(v string) { id.MarkerDescription = v }},
		{"Date Installed", false, func(v string) { id.DateInstalled = parseDate(v) }},
		{"Geologic Characteristic", false, func(v string) { id.GeologicCharacteristic = v }},
		{"Bedrock Type", false, func(v string) { id.BedrockType = v }},
		{"Bedrock Condition", false, func(v string) { id.BedrockCondition = v }},
		{"Fracture Spacing", false, func(v string) { id.FractureSpacing = v }},
		{"Fault zones nearby", false, func(v string) { id.FaultZonesNearby = v }},
		{"Distance/activity", true, func(v string) { id.DistanceActivity = addMultipleLine(id.DistanceActivity, v) }},
		{"Additional Information", true, func(v string) { id.Notes = addMultipleLine(id.Notes, v) }},
	})
}

func (s *Site) decodeLocation(b block) {
	loc := &s.Location
	cart := &loc.ApproximatePosition.CartesianPosition
	geod := &loc.ApproximatePosition.GeodeticPosition
	s.extractFields(b, []field{
		{"City or Town", false, func(v string) { loc.City = v }},
		{"State or Province", false, func(v string) { loc.State = v }},
		{"Country", false, func(v string) { loc.Country = v }},
		{"Country or Region", false, func(v string) { loc.Country = v }},
		{"Tectonic Plate", false, func(v string) { loc.TectonicPlate = v }},
		{"X coordinate (m)", false, func(v string) { s.setFloat(&cart.Coordinates[0], b.tag, "X coordinate", v) }},
		{"Y coordinate (m)", false, func(v string) { s.setFloat(&cart.Coordinates[1], b.tag, "Y coordinate", v) }},
		{"Z coordinate (m)", false, func(v string) { s.setFloat(&cart.Coordinates[2], b.tag, "Z coordinate", v) }},
		{"Latitude (N is +)", false, func(v string) { s.setFloat(&geod.Coordinates[0], b.tag, "Latitude", v) }},
		{"Longitude (E is +)", false, func(v string) { s.setFloat(&geod.Coordinates[1], b.tag, "Longitude", v) }},
		{"Elevation (m,ellips.)", false, func(v string) { s.setFloat(&geod.Coordinates[2], b.tag, "Elevation", v) }},
		{"Additional Information", true, func(v string) { loc.Notes = addMultipleLine(loc.Notes, v) }},
	})
}

func (s *Site) decodeReceiver(b block) {
	if b.sub == "" { // "3.  GNSS Receiver Information" itself
		return
	}
	recv := &Receiver{}
	s.extractFields(b, []field{
		{"Receiver Type", false, func(v string) { recv.Type = v }},
		{"Satellite System", false, func(v string) {
			syss, err := ParseSatSystems(v)
			if err != nil {
				s.warnf("block %s: %v", b.tag, err)
				return
			}
			recv.SatSystems = syss
		}},
		{"Serial Number", false, func(v string) { recv.SerialNum = v }},
		{"Firmware Version", false, func(v string) { recv.Firmware = v }},
		{"Elevation Cutoff Setting", false, func(v string) { s.setFloat(&recv.ElevationCutoff, b.tag, "Elevation Cutoff Setting", v) }},
		{"Date Installed", false, func(v string) { recv.DateInstalled = parseDate(v) }},
		{"Date Removed", false, func(v string) { recv.DateRemoved = parseDate(v) }},
		{"Temperature Stabiliz.", false, func(v string) { recv.TemperatureStabiliz = v }},
		{"Additional Information", true, func(v string) { recv.Notes = addMultipleLine(recv.Notes, v) }},
	})
	if recv.Type != "" {
		s.Receivers = append(s.Receivers, recv)
	}
}

func (s *Site) decodeAntenna(b block) {
	if b.sub == "" {
		return
	}
	ant := &Antenna{}
	s.extractFields(b, []field{
		{"Antenna Type", false, func(v string) { ant.Type = v }},
		{"Serial Number", false, func(v string) { ant.SerialNum = v }},
		{"Antenna Reference Point", false, func(v string) { ant.ReferencePoint = v }},
		{"Marker->ARP Up Ecc. (m)", false, func(v string) { s.setFloat(&ant.EccUp, b.tag, "Marker->ARP Up Ecc.", v) }},
		{"Marker->ARP North Ecc(m)", false, func(v string) { s.setFloat(&ant.EccNorth, b.tag, "Marker->ARP North Ecc", v) }},
		{"Marker->ARP East Ecc(m)", false, func(v string) { s.setFloat(&ant.EccEast, b.tag, "Marker->ARP East Ecc", v) }},
		{"Alignment from True N", false, func(v string) { s.setFloat(&ant.AlignmentFromTrueNorth, b.tag, "Alignment from True N", v) }},
		{"Antenna Radome Type", false, func(v string) {
			if v != "" && len(v) != 4 {
				s.warnf("block %s: Antenna Radome Type should be 4 chars long: %q", b.tag, v)
			}
			ant.Radome = v
		}},
		{"Radome Serial Number", false, func(v string) { ant.RadomeSerialNum = v }},
		{"Antenna Cable Type", false, func(v string) { ant.CableType = v }},
		{"Antenna Cable Length", false, func(v string) { s.setFloat(&ant.CableLength, b.tag, "Antenna Cable Length", v) }},
		{"Date Installed", false, func(v string) { ant.DateInstalled = parseDate(v) }},
		{"Date Removed", false, func(v string) { ant.DateRemoved = parseDate(v) }},
		{"Additional Information", true, func(v string) { ant.Notes = addMultipleLine(ant.Notes, v) }},
	})
	if ant.Type != "" {
		s.Antennas = append(s.Antennas, ant)
	}
}

func (s *Site) decodeLocalTies(b block) {
	if b.sub == "" {
		return
	}
	ties := LocalTies{}
	s.extractFields(b, []field{
		{"Tied Marker Name", false, func(v string) { ties.MarkerName = v }},
		{"Tied Marker Usage", false, func(v string) { ties.MarkerUsage = v }},
		{"Tied Marker CDP Number", false, func(v string) { ties.MarkerCDPNumber = v }},
		{"Tied Marker DOMES Number", false, func(v string) { ties.MarkerDOMESNumber = v }},
		{"dx (m)", false, func(v string) { s.setFloat(&ties.DifferentialFromMarker.Dx, b.tag, "dx", v) }},
		{"dy (m)", false, func(v string) { s.setFloat(&ties.DifferentialFromMarker.Dy, b.tag, "dy", v) }},
		{"dz (m)", false, func(v string) { s.setFloat(&ties.DifferentialFromMarker.Dz, b.tag, "dz", v) }},
		{"Accuracy (mm)", false, func(v string) { s.setFloat(&ties.Accuracy, b.tag, "Accuracy", v) }},
		{"Survey method", false, func(v string) { ties.SurveyMethod = v }},
		{"Date Measured", false, func(v string) { ties.DateMeasured = parseDate(v) }},
		{"Additional Information", true, func(v string) { ties.Notes = addMultipleLine(ties.Notes, v) }},
	})
	if ties.MarkerName != "" {
		s.LocalTies = append(s.LocalTies, ties)
	}
}

func (s *Site) decodeFrequencyStandard(b block) {
	if b.sub == "" {
		return
	}
	freq := FrequencyStandard{}
	s.extractFields(b, []field{
		{"Standard Type", false, func(v string) { freq.Type = v }},
		{"Input Frequency", false, func(v string) { freq.InputFrequency = v }},
		{"Effective Dates", false, func(v string) { freq.EffectiveDates = parseEffectiveDates(v) }},
		{"Notes", true, func(v string) { freq.Notes = addMultipleLine(freq.Notes, v) }},
	})
	if freq.Type != "" {
		s.FrequencyStandards = append(s.FrequencyStandards, freq)
	}
}

func (s *Site) decodeCollocation(b block) {
	if b.sub == "" {
		return
	}
	coll := Collocation{}
	s.extractFields(b, []field{
		{"Instrumentation Type", false, func(v string) { coll.InstrumentType = v }},
		{"Status", false, func(v string) { coll.Status = v }},
		{"Effective Dates", false, func(v string) { coll.EffectiveDates = parseEffectiveDates(v) }},
		{"Notes", true, func(v string) { coll.Notes = addMultipleLine(coll.Notes, v) }},
	})
	if coll.InstrumentType != "" && coll.InstrumentType != "NONE" {
		s.Collocations = append(s.Collocations, coll)
	}
}

func (s *Site) decodeMeteoSensor(b block) {
	switch {
	case strings.HasPrefix(b.tag, "8.1."):
		sensor := HumiditySensor{}
		s.extractFields(b, append(meteoFields(s, b,
			&sensor.Manufacturer, &sensor.SerialNumber, &sensor.HeightDiffToAntenna,
			&sensor.CalibrationDate, &sensor.EffectiveDates, &sensor.Notes),
			field{"Humidity Sensor Model", false, func(v string) { sensor.Type = v }},
			field{"Data Sampling Interval", false, func(v string) { s.setFloat(&sensor.DataSamplingInterval, b.tag, "Data Sampling Interval", v) }},
			field{"Accuracy (% rel h)", false, func(v string) { s.setFloat(&sensor.Accuracy, b.tag, "Accuracy", v) }},
			field{"Aspiration", false, func(v string) { sensor.Aspiration = v }},
		))
		if sensor.Type != "" {
			s.HumiditySensors = append(s.HumiditySensors, sensor)
		}
	case strings.HasPrefix(b.tag, "8.2."):
		sensor := PressureSensor{}
		s.extractFields(b, append(meteoFields(s, b,
			&sensor.Manufacturer, &sensor.SerialNumber, &sensor.HeightDiffToAntenna,
			&sensor.CalibrationDate, &sensor.EffectiveDates, &sensor.Notes),
			field{"Pressure Sensor Model", false, func(v string) { sensor.Type = v }},
			field{"Data Sampling Interval", false, func(v string) { s.setFloat(&sensor.DataSamplingInterval, b.tag, "Data Sampling Interval", v) }},
			field{"Accuracy", false, func(v string) { s.setFloat(&sensor.Accuracy, b.tag, "Accuracy", v) }},
		))
		if sensor.Type != "" {
			s.PressureSensors = append(s.PressureSensors, sensor)
		}
	case strings.HasPrefix(b.tag, "8.3."):
		sensor := TemperatureSensor{}
		s.extractFields(b, append(meteoFields(s, b,
			&sensor.Manufacturer, &sensor.SerialNumber, &sensor.HeightDiffToAntenna,
			&sensor.CalibrationDate, &sensor.EffectiveDates, &sensor.Notes),
			field{"Temp. Sensor Model", false, func(v string) { sensor.Type = v }},
			field{"Data Sampling Interval", false, func(v string) { s.setFloat(&sensor.DataSamplingInterval, b.tag, "Data Sampling Interval", v) }},
			field{"Accuracy", false, func(v string) { s.setFloat(&sensor.Accuracy, b.tag, "Accuracy", v) }},
			field{"Aspiration", false, func(v string) { sensor.Aspiration = v }},
		))
		if sensor.Type != "" {
			s.TemperatureSensors = append(s.TemperatureSensors, sensor)
		}
	case strings.HasPrefix(b.tag, "8.4."):
		sensor := WaterVaporSensor{}
		s.extractFields(b, append(meteoFields(s, b,
			&sensor.Manufacturer, &sensor.SerialNumber, &sensor.HeightDiffToAntenna,
			&sensor.CalibrationDate, &sensor.EffectiveDates, &sensor.Notes),
			field{"Water Vapor Radiometer", false, func(v string) { sensor.Type = v }},
			field{"Distance to Antenna", false, func(v string) { s.setFloat(&sensor.DistanceToAntenna, b.tag, "Distance to Antenna", v) }},
		))
		if sensor.Type != "" {
			s.WaterVaporSensors = append(s.WaterVaporSensors, sensor)
		}
	}
}

// meteoFields are the labels shared by all meteorological sensor blocks.
func meteoFields(s *Site, b block, manufacturer, serial *string, heightDiff *float64,
	calDate *time.Time, eff *EffectiveDates, notes *string) []field {
	return []field{
		{"Manufacturer", false, func(v string) { *manufacturer = v }},
		{"Serial Number", false, func(v string) { *serial = v }},
		{"Height Diff to Ant", false, func(v string) { s.setFloat(heightDiff, b.tag, "Height Diff to Ant", v) }},
		{"Calibration date", false, func(v string) { *calDate = parseDate(v) }},
		{"Effective Dates", false, func(v string) { *eff = parseEffectiveDates(v) }},
		{"Notes", true, func(v string) { *notes = addMultipleLine(*notes, v) }},
	}
}

func (s *Site) decodeInterference(b block) {
	switch {
	case strings.HasPrefix(b.tag, "9.1."):
		item := RadioInterference{}
		s.extractFields(b, []field{
			{"Radio Interferences", false, func(v string) { item.Source = v }},
			{"Observed Degradations", false, func(v string) { item.ObservedDegradations = v }},
			{"Effective Dates", false, func(v string) { item.EffectiveDates = parseEffectiveDates(v) }},
			{"Additional Information", true, func(v string) { item.Notes = addMultipleLine(item.Notes, v) }},
		})
		if item.Source != "" {
			s.RadioInterferences = append(s.RadioInterferences, item)
		}
	case strings.HasPrefix(b.tag, "9.2."):
		item := MultipathSource{}
		s.extractFields(b, []field{
			{"Multipath Sources", false, func(v string) { item.Source = v }},
			{"Effective Dates", false, func(v string) { item.EffectiveDates = parseEffectiveDates(v) }},
			{"Additional Information", true, func(v string) { item.Notes = addMultipleLine(item.Notes, v) }},
		})
		if item.Source != "" {
			s.MultipathSources = append(s.MultipathSources, item)
		}
	case strings.HasPrefix(b.tag, "9.3."):
		item := SignalObstruction{}
		s.extractFields(b, []field{
			{"Signal Obstructions", false, func(v string) { item.Source = v }},
			{"Effective Dates", false, func(v string) { item.EffectiveDates = parseEffectiveDates(v) }},
			{"Additional Information", true, func(v string) { item.Notes = addMultipleLine(item.Notes, v) }},
		})
		if item.Source != "" {
			s.SignalObstructions = append(s.SignalObstructions, item)
		}
	}
}

func (s *Site) decodeEpisodicEffect(b block) {
	if b.sub == "" {
		return
	}
	eff := LocalEpisodicEffect{}
	s.extractFields(b, []field{
		{"Date", false, func(v string) { eff.EffectiveDates = parseEffectiveDates(v) }},
		{"Event", false, func(v string) { eff.Event = v }},
	})
	if eff.Event != "" {
		s.LocalEpisodicEffects = append(s.LocalEpisodicEffects, eff)
	}
}

// decodeAgency handles blocks 11 and 12. These section numbers changed
// meaning over the format's history: in the current format 11 is the
// on-site contact agency and 12 the responsible agency, in very old logs 11
// held signal obstructions and 12 episodic effects. Both interpretations
// are tried, the one that yields content wins.
func (s *Site) decodeAgency(b block) {
	if agency, ok := extractAgency(s, b); ok {
		if b.major == 11 {
			s.ContactAgencies = append(s.ContactAgencies, agency)
		} else {
			s.ResponsibleAgencies = append(s.ResponsibleAgencies, agency)
		}
		return
	}

	// legacy meaning
	if b.major == 11 {
		item := SignalObstruction{}
		s.extractFields(b, []field{
			{"Signal Obstructions", false, func(v string) { item.Source = v }},
			{"Source", false, func(v string) { item.Source = v }},
			{"Effective Dates", false, func(v string) { item.EffectiveDates = parseEffectiveDates(v) }},
			{"Additional Information", true, func(v string) { item.Notes = addMultipleLine(item.Notes, v) }},
		})
		if item.Source != "" {
			s.SignalObstructions = append(s.SignalObstructions, item)
			s.warnf("block %s: interpreted as legacy signal obstruction", b.tag)
		}
		return
	}
	eff := LocalEpisodicEffect{}
	s.extractFields(b, []field{
		{"Date", false, func(v string) { eff.EffectiveDates = parseEffectiveDates(v) }},
		{"Event", false, func(v string) { eff.Event = v }},
	})
	if eff.Event != "" {
		s.LocalEpisodicEffects = append(s.LocalEpisodicEffects, eff)
		s.warnf("block %s: interpreted as legacy episodic effect", b.tag)
	}
}

// extractAgency parses the modern contact layout of blocks 11/12 with its
// primary/secondary contact subsections.
func extractAgency(s *Site, b block) (Agency, bool) {
	agency := Agency{}
	cur := Contact{}
	flush := func() {
		if cur.Name != "" || cur.Email != "" {
			agency.Contacts = append(agency.Contacts, cur)
			cur = Contact{}
		}
	}
	s.extractFields(b, []field{
		{"Agency", false, func(v string) { agency.Name = addMultipleLine(agency.Name, v) }},
		{"Preferred Abbreviation", false, func(v string) { agency.Abbreviation = v }},
		{"Mailing Address", true, func(v string) { agency.MailingAddress = addMultipleLine(agency.MailingAddress, v) }},
		{"Contact Name", false, func(v string) { flush(); cur.Name = v }},
		{"Telephone (primary)", false, func(v string) { cur.TelephonePrimary = v }},
		{"Telephone (secondary)", false, func(v string) { cur.TelephoneSecondary = v }},
		{"Fax", false, func(v string) { cur.Fax = v }},
		{"E-mail", false, func(v string) { cur.Email = v }},
		{"Additional Information", true, func(v string) { agency.Notes = addMultipleLine(agency.Notes, v) }},
	})
	flush()
	if agency.Name == "" && len(agency.Contacts) == 0 {
		return Agency{}, false
	}
	return agency, true
}

func (s *Site) decodeMoreInfo(b block) {
	// cut off the antenna graphics ASCII art
	lines := b.lines
	for i, line := range lines {
		if strings.Contains(line, "Antenna Graphics with Dimensions") {
			lines = lines[:i]
			break
		}
	}
	b.lines = lines

	info := &s.MoreInfo
	s.extractFields(b, []field{
		{"Primary Data Center", false, func(v string) { info.PrimaryDataCenter = v }},
		{"Secondary Data Center", false, func(v string) { info.SecondaryDataCenter = v }},
		{"URL for More Information", false, func(v string) { info.URLForMoreInformation = v }},
		{"Site Map", false, func(v string) { info.SiteMap = v }},
		{"Site Diagram", false, func(v string) { info.SiteDiagram = v }},
		{"Horizon Mask", false, func(v string) { info.HorizonMask = v }},
		{"Monument Description", false, func(v string) { info.MonumentDescription = v }},
		{"Site Pictures", false, func(v string) { info.SitePictures = v }},
		{"Additional Information", true, func(v string) { info.Notes = addMultipleLine(info.Notes, v) }},
	})
}
