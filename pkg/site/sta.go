package site

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"
)

// The Bernese STA-file is parsed by byte column, not by delimiter. All
// rulers, titles and field widths below are fixed literal text, any
// deviation silently corrupts the downstream processing.

// Sites is a collection of GNSS sites for writing one STA-file.
type Sites []*Site

const (
	staDateFormat = "2006 01 02 15 04 05"

	// missingSerial is written when a serial number has no digits at all.
	missingSerial = "999999"
)

const (
	staTitle = "STATION INFORMATION FILE FOR BERNESE GNSS SOFTWARE 5.2"

	typ1Title  = "TYPE 001: RENAMING OF STATIONS"
	typ1Header = "STATION NAME          FLG          FROM                   TO         OLD STATION NAME      REMARK"
	typ1Ruler  = "****************      ***  YYYY MM DD HH MM SS  YYYY MM DD HH MM SS  ********************  ************************"

	typ2Title  = "TYPE 002: STATION INFORMATION"
	typ2Header = "STATION NAME          FLG          FROM                   TO         RECEIVER TYPE         RECEIVER SERIAL NBR   REC #   ANTENNA TYPE          ANTENNA SERIAL NBR    ANT #    NORTH      EAST      UP      DESCRIPTION             REMARK"
	typ2Ruler  = "****************      ***  YYYY MM DD HH MM SS  YYYY MM DD HH MM SS  ********************  ********************  ******  ********************  ********************  ******  ***.****  ***.****  ***.****  **********************  ************************"

	typ3Title  = "TYPE 003: HANDLING OF STATION PROBLEMS"
	typ3Header = "STATION NAME          FLG          FROM                   TO         REMARK"
	typ3Ruler  = "****************      ***  YYYY MM DD HH MM SS  YYYY MM DD HH MM SS  ************************************************************"

	typ4Title  = "TYPE 004: STATION COORDINATES AND VELOCITIES (ADDNEQ)"
	typ4Extra  = "                                            RELATIVE CONSTR. POSITION     RELATIVE CONSTR. VELOCITY"
	typ4Header = "STATION NAME 1        STATION NAME 2        NORTH     EAST      UP        NORTH     EAST      UP"
	typ4Ruler  = "****************      ****************      **.*****  **.*****  **.*****  **.*****  **.*****  **.*****"

	typ5Title  = "TYPE 005: HANDLING STATION TYPES"
	typ5Header = "STATION NAME          FLG  FROM                 TO                   MARKER TYPE           REMARK"
	typ5Ruler  = "****************      ***  YYYY MM DD HH MM SS  YYYY MM DD HH MM SS  ********************  ************************"
)

// supported STA-file format versions.
var staFormatVersions = map[string]bool{"1.01": true, "1.03": true}

// WriteBerneseSTA writes all sites as one Bernese STA-file. Stations
// without a single usable receiver+antenna period are left out silently.
// Remark is written into the remark column of every emitted row.
func (sites Sites) WriteBerneseSTA(w io.Writer, fmtVers, remark string) error {
	if !staFormatVersions[fmtVers] {
		return fmt.Errorf("unsupported STA format version: %q", fmtVers)
	}

	sorted := make(Sites, len(sites))
	copy(sorted, sites)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StationName() < sorted[j].StationName()
	})

	type stationRows struct {
		site   *Site
		events []StationEvent
	}
	var stations []stationRows
	for _, s := range sorted {
		events, err := s.StationInfo()
		if err != nil || len(events) == 0 {
			continue
		}
		stations = append(stations, stationRows{site: s, events: events})
	}

	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "%s           %s\n", staTitle, strings.ToUpper(time.Now().UTC().Format("02-Jan-06 15:04")))
	fmt.Fprintln(bw, strings.Repeat("-", 80))
	fmt.Fprintln(bw)
	fmt.Fprintf(bw, "FORMAT VERSION: %s\n", fmtVers)
	fmt.Fprintln(bw, "TECHNIQUE:      GNSS")
	fmt.Fprintln(bw)

	writeSection(bw, typ1Title, "", typ1Header, typ1Ruler)
	for _, sta := range stations {
		fmt.Fprintln(bw, encodeTyp1(sta.site, remark))
	}
	fmt.Fprintln(bw)
	fmt.Fprintln(bw)

	writeSection(bw, typ2Title, "", typ2Header, typ2Ruler)
	for _, sta := range stations {
		for _, ev := range sta.events {
			fmt.Fprintln(bw, encodeTyp2(ev, remark))
		}
	}
	fmt.Fprintln(bw)
	fmt.Fprintln(bw)

	writeSection(bw, typ3Title, "", typ3Header, typ3Ruler)
	fmt.Fprintln(bw)
	fmt.Fprintln(bw)

	writeSection(bw, typ4Title, typ4Extra, typ4Header, typ4Ruler)
	fmt.Fprintln(bw)
	fmt.Fprintln(bw)

	writeSection(bw, typ5Title, "", typ5Header, typ5Ruler)
	fmt.Fprintln(bw)

	return bw.Flush()
}

func writeSection(w io.Writer, title, extra, header, ruler string) {
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("-", len(title)))
	// TYPE 004 squeezes its extra ruling directly between the dashes and
	// the header, the other sections have a blank line there
	if extra != "" {
		fmt.Fprintln(w, extra)
	} else {
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, header)
	fmt.Fprintln(w, ruler)
}

// encodeTyp1 encodes one renaming row. Stations map 1:1 by name in this
// workflow, so only the wildcard old name and the remark are populated.
func encodeTyp1(s *Site, remark string) string {
	line := fmt.Sprintf("%-16s      %-3s  %-19s  %-19s  %-20s  %s",
		s.StationName(), "001", "", "", s.StationID()+"*", remark)
	return strings.TrimRight(line, " ")
}

// encodeTyp2 encodes one station information row with the fixed column
// layout of the TYPE 002 ruler.
func encodeTyp2(ev StationEvent, remark string) string {
	to := ""
	if !ev.To.IsZero() && ev.To.Before(farFuture) {
		to = ev.To.Format(staDateFormat)
	}
	line := fmt.Sprintf("%-16s      %-3s  %-19s  %-19s  %-20.20s  %-20.20s  %6s  %-20.20s  %-20.20s  %6s  %8.4f  %8.4f  %8.4f  %-22.22s  %s",
		ev.StationName, ev.Flag,
		ev.From.Format(staDateFormat), to,
		ev.ReceiverType, ev.ReceiverSerial, sanitizeSerial(ev.ReceiverSerial),
		ev.AntennaType, ev.AntennaSerial, sanitizeSerial(ev.AntennaSerial),
		ev.EccNorth, ev.EccEast, ev.EccUp,
		ev.Description, remark)
	return strings.TrimRight(line, " ")
}

// sanitizeSerial reduces a serial number to the last 6 digits. The
// consuming engine only accepts numeric serials of up to 6 characters;
// serials without any digit become the missingSerial sentinel.
func sanitizeSerial(serial string) string {
	var b strings.Builder
	for _, r := range serial {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if digits == "" {
		return missingSerial
	}
	if len(digits) > 6 {
		digits = digits[len(digits)-6:]
	}
	return digits
}
