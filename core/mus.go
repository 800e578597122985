package core

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for domain records. These follow the serializer-per-type
// layout so storage and snapshot code can compose them the same way
// regardless of type.

// IDMUS serializes an ID.
var IDMUS = idMUS{}

type idMUS struct{}

func (s idMUS) Marshal(v ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (s idMUS) Unmarshal(bs []byte) (v ID, n int, err error) {
	u, n, err := varint.Uint64.Unmarshal(bs)
	return ID(u), n, err
}

func (s idMUS) Size(v ID) (size int) {
	return varint.Uint64.Size(uint64(v))
}

// timeMUS serializes a time.Time as UnixMicro.
var timeMUS = timeSer{}

type timeSer struct{}

func (s timeSer) Marshal(v time.Time, bs []byte) (n int) {
	return varint.Int64.Marshal(v.UnixMicro(), bs)
}

func (s timeSer) Unmarshal(bs []byte) (v time.Time, n int, err error) {
	us, n, err := varint.Int64.Unmarshal(bs)
	if err != nil {
		return
	}
	return time.UnixMicro(us).UTC(), n, nil
}

func (s timeSer) Size(v time.Time) (size int) {
	return varint.Int64.Size(v.UnixMicro())
}

// VectorMUS serializes a []float32 embedding vector.
var VectorMUS = vectorMUS{}

type vectorMUS struct{}

func (s vectorMUS) Marshal(v []float32, bs []byte) (n int) {
	n = varint.Int.Marshal(len(v), bs)
	for _, f := range v {
		n += raw.Float32.Marshal(f, bs[n:])
	}
	return
}

func (s vectorMUS) Unmarshal(bs []byte) (v []float32, n int, err error) {
	length, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return
	}
	if length < 0 {
		return nil, n, ErrNegativeLength
	}
	v = make([]float32, length)
	var n1 int
	for i := 0; i < length; i++ {
		v[i], n1, err = raw.Float32.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	return
}

func (s vectorMUS) Size(v []float32) (size int) {
	size = varint.Int.Size(len(v))
	for _, f := range v {
		size += raw.Float32.Size(f)
	}
	return
}

// stringSliceMUS serializes a []string.
var stringSliceMUS = stringSliceSer{}

type stringSliceSer struct{}

func (s stringSliceSer) Marshal(v []string, bs []byte) (n int) {
	n = varint.Int.Marshal(len(v), bs)
	for _, str := range v {
		n += ord.String.Marshal(str, bs[n:])
	}
	return
}

func (s stringSliceSer) Unmarshal(bs []byte) (v []string, n int, err error) {
	length, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return
	}
	if length < 0 {
		return nil, n, ErrNegativeLength
	}
	v = make([]string, length)
	var n1 int
	for i := 0; i < length; i++ {
		v[i], n1, err = ord.String.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	return
}

func (s stringSliceSer) Size(v []string) (size int) {
	size = varint.Int.Size(len(v))
	for _, str := range v {
		size += ord.String.Size(str)
	}
	return
}

// DocumentMUS serializes a Document.
var DocumentMUS = documentMUS{}

type documentMUS struct{}

func (s documentMUS) Marshal(v Document, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.Filename, bs[n:])
	n += ord.String.Marshal(v.Fingerprint, bs[n:])
	n += varint.Int.Marshal(int(v.Status), bs[n:])
	n += ord.String.Marshal(v.FailureReason, bs[n:])
	n += ord.String.Marshal(v.ExtractedText, bs[n:])
	n += varint.Int.Marshal(v.CharCount, bs[n:])
	n += ord.Bool.Marshal(v.VisionUsed, bs[n:])
	n += ord.Bool.Marshal(v.IndexPending, bs[n:])
	n += ord.String.Marshal(v.StoragePath, bs[n:])
	n += timeMUS.Marshal(v.InsertedAt, bs[n:])
	n += timeMUS.Marshal(v.UpdatedAt, bs[n:])
	return
}

func (s documentMUS) Unmarshal(bs []byte) (v Document, n int, err error) {
	var n1 int
	v.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	v.Filename, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Fingerprint, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	var status int
	status, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Status = DocumentStatus(status)
	v.FailureReason, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.ExtractedText, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.CharCount, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.VisionUsed, n1, err = ord.Bool.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.IndexPending, n1, err = ord.Bool.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.StoragePath, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.InsertedAt, n1, err = timeMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.UpdatedAt, n1, err = timeMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (s documentMUS) Size(v Document) (size int) {
	size = IDMUS.Size(v.Id)
	size += ord.String.Size(v.Filename)
	size += ord.String.Size(v.Fingerprint)
	size += varint.Int.Size(int(v.Status))
	size += ord.String.Size(v.FailureReason)
	size += ord.String.Size(v.ExtractedText)
	size += varint.Int.Size(v.CharCount)
	size += ord.Bool.Size(v.VisionUsed)
	size += ord.Bool.Size(v.IndexPending)
	size += ord.String.Size(v.StoragePath)
	size += timeMUS.Size(v.InsertedAt)
	size += timeMUS.Size(v.UpdatedAt)
	return
}

// experienceMUS serializes an ExperienceEntry.
var experienceMUS = experienceSer{}

type experienceSer struct{}

func (s experienceSer) Marshal(v ExperienceEntry, bs []byte) (n int) {
	n = ord.String.Marshal(v.Title, bs)
	n += ord.String.Marshal(v.Employer, bs[n:])
	n += varint.Int.Marshal(v.StartYear, bs[n:])
	n += ord.String.Marshal(v.EndYear, bs[n:])
	n += ord.String.Marshal(v.Description, bs[n:])
	return
}

func (s experienceSer) Unmarshal(bs []byte) (v ExperienceEntry, n int, err error) {
	var n1 int
	v.Title, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	v.Employer, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.StartYear, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.EndYear, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Description, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return
}

func (s experienceSer) Size(v ExperienceEntry) (size int) {
	size = ord.String.Size(v.Title)
	size += ord.String.Size(v.Employer)
	size += varint.Int.Size(v.StartYear)
	size += ord.String.Size(v.EndYear)
	size += ord.String.Size(v.Description)
	return
}

// educationMUS serializes an EducationEntry.
var educationMUS = educationSer{}

type educationSer struct{}

func (s educationSer) Marshal(v EducationEntry, bs []byte) (n int) {
	n = ord.String.Marshal(v.Degree, bs)
	n += ord.String.Marshal(v.Institution, bs[n:])
	n += varint.Int.Marshal(v.StartYear, bs[n:])
	n += ord.String.Marshal(v.EndYear, bs[n:])
	n += ord.String.Marshal(v.Description, bs[n:])
	return
}

func (s educationSer) Unmarshal(bs []byte) (v EducationEntry, n int, err error) {
	var n1 int
	v.Degree, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	v.Institution, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.StartYear, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.EndYear, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Description, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return
}

func (s educationSer) Size(v EducationEntry) (size int) {
	size = ord.String.Size(v.Degree)
	size += ord.String.Size(v.Institution)
	size += varint.Int.Size(v.StartYear)
	size += ord.String.Size(v.EndYear)
	size += ord.String.Size(v.Description)
	return
}

// CandidateProfileMUS serializes a CandidateProfile.
var CandidateProfileMUS = candidateProfileMUS{}

type candidateProfileMUS struct{}

func (s candidateProfileMUS) Marshal(v CandidateProfile, bs []byte) (n int) {
	n = IDMUS.Marshal(v.DocumentId, bs)
	n += ord.String.Marshal(v.FullName, bs[n:])
	n += ord.String.Marshal(v.CurrentTitle, bs[n:])
	n += ord.String.Marshal(v.PrimarySkill, bs[n:])
	n += varint.Int.Marshal(v.YearsExperience, bs[n:])
	n += ord.String.Marshal(v.Summary, bs[n:])
	n += stringSliceMUS.Marshal(v.KeySkills, bs[n:])
	n += varint.Int.Marshal(len(v.Experience), bs[n:])
	for _, e := range v.Experience {
		n += experienceMUS.Marshal(e, bs[n:])
	}
	n += varint.Int.Marshal(len(v.Education), bs[n:])
	for _, e := range v.Education {
		n += educationMUS.Marshal(e, bs[n:])
	}
	n += timeMUS.Marshal(v.InsertedAt, bs[n:])
	n += timeMUS.Marshal(v.UpdatedAt, bs[n:])
	return
}

func (s candidateProfileMUS) Unmarshal(bs []byte) (v CandidateProfile, n int, err error) {
	var n1 int
	v.DocumentId, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	v.FullName, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.CurrentTitle, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.PrimarySkill, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.YearsExperience, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Summary, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.KeySkills, n1, err = stringSliceMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	var count int
	count, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	if count < 0 {
		return v, n, ErrNegativeLength
	}
	v.Experience = make([]ExperienceEntry, count)
	for i := 0; i < count; i++ {
		v.Experience[i], n1, err = experienceMUS.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	count, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	if count < 0 {
		return v, n, ErrNegativeLength
	}
	v.Education = make([]EducationEntry, count)
	for i := 0; i < count; i++ {
		v.Education[i], n1, err = educationMUS.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	v.InsertedAt, n1, err = timeMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.UpdatedAt, n1, err = timeMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (s candidateProfileMUS) Size(v CandidateProfile) (size int) {
	size = IDMUS.Size(v.DocumentId)
	size += ord.String.Size(v.FullName)
	size += ord.String.Size(v.CurrentTitle)
	size += ord.String.Size(v.PrimarySkill)
	size += varint.Int.Size(v.YearsExperience)
	size += ord.String.Size(v.Summary)
	size += stringSliceMUS.Size(v.KeySkills)
	size += varint.Int.Size(len(v.Experience))
	for _, e := range v.Experience {
		size += experienceMUS.Size(e)
	}
	size += varint.Int.Size(len(v.Education))
	for _, e := range v.Education {
		size += educationMUS.Size(e)
	}
	size += timeMUS.Size(v.InsertedAt)
	size += timeMUS.Size(v.UpdatedAt)
	return
}

// ErrNegativeLength indicates a corrupted length prefix.
var ErrNegativeLength = negativeLengthError{}

type negativeLengthError struct{}

func (negativeLengthError) Error() string { return "negative length prefix" }
