package site

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// farFuture marks an open-ended equipment interval. The reconciler and the
// STA writer must agree on this exact value: the writer renders it as a
// blank "to" column.
var farFuture = time.Date(2099, 12, 31, 0, 0, 0, 0, time.UTC)

// timeShift breaks the tie when two chronological items, e.g. receivers,
// share an install instant. The later item wins the boundary.
const timeShift = time.Second

// StationEvent is one time period with exactly one active receiver and one
// active antenna. It corresponds to one TYPE 002 row in a STA-file.
type StationEvent struct {
	StationName    string
	Flag           string
	From           time.Time
	To             time.Time
	ReceiverType   string
	ReceiverSerial string
	AntennaType    string // 20 chars, radome included
	AntennaSerial  string
	EccNorth       float64
	EccEast        float64
	EccUp          float64
	Description    string
}

// sameEquipment reports whether two events only differ in their time window.
func (ev StationEvent) sameEquipment(other StationEvent) bool {
	return ev.ReceiverType == other.ReceiverType &&
		ev.ReceiverSerial == other.ReceiverSerial &&
		ev.AntennaType == other.AntennaType &&
		ev.AntennaSerial == other.AntennaSerial &&
		ev.EccNorth == other.EccNorth &&
		ev.EccEast == other.EccEast &&
		ev.EccUp == other.EccUp
}

// cleanReceivers sorts the receiver history, drops receivers without an
// install date, makes duplicate install dates unique and derives missing
// removal dates from the follow-up receiver.
func (s *Site) cleanReceivers() {
	kept := s.Receivers[:0]
	for i, recv := range s.Receivers {
		if recv.DateInstalled.IsZero() {
			s.warnf("receiver %d (%s) has no install date, dropped", i+1, recv.Type)
			continue
		}
		kept = append(kept, recv)
	}
	s.Receivers = kept

	sort.SliceStable(s.Receivers, func(i, j int) bool {
		return s.Receivers[i].DateInstalled.Before(s.Receivers[j].DateInstalled)
	})

	for i := 0; i < len(s.Receivers)-1; i++ {
		curr, next := s.Receivers[i], s.Receivers[i+1]
		if next.DateInstalled.Equal(curr.DateInstalled) {
			s.warnf("receivers %d and %d share install date %s", i+1, i+2, curr.DateInstalled.Format(time.RFC3339))
			curr.DateRemoved = curr.DateInstalled
			next.DateInstalled = next.DateInstalled.Add(timeShift)
		}
	}

	for i := 0; i < len(s.Receivers)-1; i++ {
		curr := s.Receivers[i]
		if curr.DateRemoved.IsZero() {
			s.warnf("receiver %d (%s) has no removal date, set to next install date", i+1, curr.Type)
			curr.DateRemoved = s.Receivers[i+1].DateInstalled
		}
	}
}

// cleanAntennas does for the antenna history what cleanReceivers does for
// the receivers and additionally repairs the 20 char antenna type field.
func (s *Site) cleanAntennas() {
	kept := s.Antennas[:0]
	for i, ant := range s.Antennas {
		if ant.DateInstalled.IsZero() {
			s.warnf("antenna %d (%s) has no install date, dropped", i+1, ant.Type)
			continue
		}
		kept = append(kept, ant)
	}
	s.Antennas = kept

	sort.SliceStable(s.Antennas, func(i, j int) bool {
		return s.Antennas[i].DateInstalled.Before(s.Antennas[j].DateInstalled)
	})

	for i := 0; i < len(s.Antennas)-1; i++ {
		curr, next := s.Antennas[i], s.Antennas[i+1]
		if next.DateInstalled.Equal(curr.DateInstalled) {
			s.warnf("antennas %d and %d share install date %s", i+1, i+2, curr.DateInstalled.Format(time.RFC3339))
			curr.DateRemoved = curr.DateInstalled
			next.DateInstalled = next.DateInstalled.Add(timeShift)
		}
	}

	for i := 0; i < len(s.Antennas)-1; i++ {
		curr := s.Antennas[i]
		if curr.DateRemoved.IsZero() {
			s.warnf("antenna %d (%s) has no removal date, set to next install date", i+1, curr.Type)
			curr.DateRemoved = s.Antennas[i+1].DateInstalled
		}
	}

	for i, ant := range s.Antennas {
		s.cleanAntennaType(i+1, ant)
	}
}

// cleanAntennaType normalizes the antenna type to the 20 char convention
// "name, radome right-aligned in the last 4 columns".
func (s *Site) cleanAntennaType(n int, ant *Antenna) {
	if len(ant.Type) == 20 {
		radome := strings.TrimSpace(ant.Type[16:])
		if ant.Radome == "" {
			ant.Radome = radome
		} else if radome != "" && radome != ant.Radome {
			s.warnf("antenna %d: radome %q differs from antenna type %q", n, ant.Radome, ant.Type)
		}
		return
	}

	parts := strings.Fields(ant.Type)
	if len(parts) == 2 && len(parts[1]) == 4 {
		if ant.Radome == "" {
			ant.Radome = parts[1]
		} else if ant.Radome != parts[1] {
			s.warnf("antenna %d: radome %q differs from antenna type %q", n, ant.Radome, ant.Type)
		}
		ant.Type = parts[0]
	}
	if ant.Radome == "" {
		ant.Radome = "NONE"
	}
}

// TypeWithRadome returns the antenna type as the fixed 20 char field used
// in STA-files: the name left-justified, the 4 char radome at the end.
func (ant *Antenna) TypeWithRadome() string {
	if len(ant.Type) == 20 {
		return ant.Type
	}
	name := ant.Type
	if len(name) > 16 {
		name = name[:16]
	}
	radome := ant.Radome
	if radome == "" {
		radome = "NONE"
	}
	return fmt.Sprintf("%-16s%4s", name, radome)
}

func removalOrOpen(t time.Time) time.Time {
	if t.IsZero() {
		return farFuture
	}
	return t
}

// activeReceiver returns the receiver whose [install, removal) window
// contains the instant. With multiple candidates the latest installed wins;
// that should not occur after cleaning but the lookup stays defensive.
func activeReceiver(list []*Receiver, t time.Time) *Receiver {
	var active *Receiver
	for _, recv := range list {
		if recv.DateInstalled.After(t) || !removalOrOpen(recv.DateRemoved).After(t) {
			continue
		}
		if active == nil || recv.DateInstalled.After(active.DateInstalled) {
			active = recv
		}
	}
	return active
}

func activeAntenna(list []*Antenna, t time.Time) *Antenna {
	var active *Antenna
	for _, ant := range list {
		if ant.DateInstalled.After(t) || !removalOrOpen(ant.DateRemoved).After(t) {
			continue
		}
		if active == nil || ant.DateInstalled.After(active.DateInstalled) {
			active = ant
		}
	}
	return active
}

// StationInfo builds the linear station timeline: the union of all receiver
// and antenna change dates defines the period boundaries, for every period
// the active receiver/antenna pair makes one event. Call ValidateAndClean
// before. Periods lacking a receiver or an antenna are skipped, identical
// consecutive events are merged.
func (s *Site) StationInfo() ([]StationEvent, error) {
	if len(s.Receivers) == 0 || len(s.Antennas) == 0 {
		return nil, fmt.Errorf("station %s: no usable receiver/antenna history", s.StationID())
	}

	boundarySet := make(map[time.Time]bool)
	for _, recv := range s.Receivers {
		boundarySet[recv.DateInstalled] = true
		if !recv.DateRemoved.IsZero() && recv.DateRemoved.Before(farFuture) {
			boundarySet[recv.DateRemoved] = true
		}
	}
	for _, ant := range s.Antennas {
		boundarySet[ant.DateInstalled] = true
		if !ant.DateRemoved.IsZero() && ant.DateRemoved.Before(farFuture) {
			boundarySet[ant.DateRemoved] = true
		}
	}
	boundaries := make([]time.Time, 0, len(boundarySet))
	for t := range boundarySet {
		boundaries = append(boundaries, t)
	}
	sort.Slice(boundaries, func(i, j int) bool { return boundaries[i].Before(boundaries[j]) })

	// DESCRIPTION column; block 2 is not mandatory in old logs
	description := s.Location.City
	if description == "" {
		description = s.Ident.Name
	}

	var events []StationEvent
	for i, start := range boundaries {
		recv := activeReceiver(s.Receivers, start)
		ant := activeAntenna(s.Antennas, start)
		if recv == nil || ant == nil {
			continue
		}

		var end time.Time
		if i < len(boundaries)-1 {
			end = boundaries[i+1].Add(-timeShift)
		} else {
			end = removalOrOpen(recv.DateRemoved)
			if antEnd := removalOrOpen(ant.DateRemoved); antEnd.Before(end) {
				end = antEnd
			}
		}
		if !end.After(start) {
			s.warnf("station %s: dropped zero length period at %s", s.StationID(), start.Format(time.RFC3339))
			continue
		}

		events = append(events, StationEvent{
			StationName:    s.StationName(),
			Flag:           "001",
			From:           start,
			To:             end,
			ReceiverType:   recv.Type,
			ReceiverSerial: recv.SerialNum,
			AntennaType:    ant.TypeWithRadome(),
			AntennaSerial:  ant.SerialNum,
			EccNorth:       ant.EccNorth,
			EccEast:        ant.EccEast,
			EccUp:          ant.EccUp,
			Description:    description,
		})
	}

	// merge periods where nothing changed
	merged := events[:0]
	for _, ev := range events {
		if n := len(merged); n > 0 && merged[n-1].sameEquipment(ev) {
			merged[n-1].To = ev.To
			continue
		}
		merged = append(merged, ev)
	}

	return merged, nil
}
