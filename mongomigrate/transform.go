// Copyright (C) MongoDB, Inc. 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package mongomigrate

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ccoveille/go-safecast"
	"github.com/medicaldb/admissions-tools/common/table"
)

// Patient is the "patient" subdocument.
type Patient struct {
	Name      string `bson:"name"`
	Age       int32  `bson:"age"`
	Gender    string `bson:"gender"`
	BloodType string `bson:"blood_type"`
}

// Medical is the "medical" subdocument.
type Medical struct {
	Condition   string `bson:"condition"`
	Medication  string `bson:"medication"`
	TestResults string `bson:"test_results"`
}

// Facility is the "facility" subdocument.
type Facility struct {
	Doctor            string `bson:"doctor"`
	Hospital          string `bson:"hospital"`
	InsuranceProvider string `bson:"insurance_provider"`
	RoomNumber        int32  `bson:"room_number"`
}

// Stay is the "stay" subdocument. Dates keep their source text.
type Stay struct {
	AdmissionDate string `bson:"admission_date"`
	DischargeDate string `bson:"discharge_date"`
	AdmissionType string `bson:"admission_type"`
}

// Admission is the document stored for one source row.
type Admission struct {
	Patient       Patient  `bson:"patient"`
	Medical       Medical  `bson:"medical"`
	Facility      Facility `bson:"facility"`
	Stay          Stay     `bson:"stay"`
	BillingAmount float64  `bson:"billing_amount"`
}

// Indexed fields, in creation order.
var IndexedFields = []string{
	"stay.admission_date",
	"facility.hospital",
	"medical.condition",
}

// Transform maps a row of tbl to its document. rowNum is reported in
// conversion errors.
func Transform(tbl *table.Table, row table.Row, rowNum int) (Admission, error) {
	get := func(column string) string {
		return tbl.Get(row, column)
	}

	age, err := parseInt32(get(colAge))
	if err != nil {
		return Admission{}, &TypeConversionError{Row: rowNum, Column: colAge, Value: get(colAge), Err: err}
	}
	room, err := parseInt32(get(colRoomNumber))
	if err != nil {
		return Admission{}, &TypeConversionError{Row: rowNum, Column: colRoomNumber, Value: get(colRoomNumber), Err: err}
	}
	billing, err := parseFloat(get(colBillingAmount))
	if err != nil {
		return Admission{}, &TypeConversionError{Row: rowNum, Column: colBillingAmount, Value: get(colBillingAmount), Err: err}
	}

	return Admission{
		Patient: Patient{
			Name:      get(colName),
			Age:       age,
			Gender:    get(colGender),
			BloodType: get(colBloodType),
		},
		Medical: Medical{
			Condition:   get(colMedicalCondition),
			Medication:  get(colMedication),
			TestResults: get(colTestResults),
		},
		Facility: Facility{
			Doctor:            get(colDoctor),
			Hospital:          get(colHospital),
			InsuranceProvider: get(colInsuranceProvider),
			RoomNumber:        room,
		},
		Stay: Stay{
			AdmissionDate: get(colAdmissionDate),
			DischargeDate: get(colDischargeDate),
			AdmissionType: get(colAdmissionType),
		},
		BillingAmount: billing,
	}, nil
}

// TransformAll maps every row of tbl, stopping at the first conversion
// error.
func TransformAll(tbl *table.Table) ([]Admission, error) {
	docs := make([]Admission, 0, len(tbl.Rows))
	for i, row := range tbl.Rows {
		doc, err := Transform(tbl, row, i+1)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// parseInt32 accepts a plain integer or a decimal with no fractional part,
// such as "34.0".
func parseInt32(raw string) (int32, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("empty value")
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return safecast.ToInt32(i)
	}

	f, err := parseFloat(s)
	if err != nil {
		return 0, fmt.Errorf("not an integer")
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("not an integer")
	}
	return safecast.ToInt32(f)
}

func parseFloat(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("empty value")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number")
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not a finite number")
	}
	return f, nil
}
