package gallery

// Selection is the record currently enlarged in the overlay, if any.
type Selection struct {
	record *ImageRecord
}

func (s *Selection) Select(r ImageRecord) {
	s.record = &r
}

func (s *Selection) Clear() {
	s.record = nil
}

// Current returns the selected record and whether one is set.
func (s *Selection) Current() (ImageRecord, bool) {
	if s.record == nil {
		return ImageRecord{}, false
	}
	return *s.record, true
}
