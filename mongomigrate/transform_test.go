// Copyright (C) MongoDB, Inc. 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package mongomigrate

import (
	"testing"

	"github.com/medicaldb/admissions-tools/common/table"
	"github.com/medicaldb/admissions-tools/common/testtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

// admissionRow returns a valid row in ExpectedColumns order with the given
// cells replaced.
func admissionRow(overrides map[string]string) table.Row {
	values := map[string]string{
		colName:              "Bobby JacksOn",
		colAge:               "34",
		colGender:            "Male",
		colBloodType:         "B-",
		colMedicalCondition:  "Cancer",
		colAdmissionDate:     "2024-01-31",
		colDoctor:            "Matthew Smith",
		colHospital:          "Sons and Miller",
		colInsuranceProvider: "Blue Cross",
		colBillingAmount:     "1234.56",
		colRoomNumber:        "201",
		colAdmissionType:     "Urgent",
		colDischargeDate:     "2024-02-02",
		colMedication:        "Paracetamol",
		colTestResults:       "Normal",
	}
	for col, v := range overrides {
		values[col] = v
	}
	row := make(table.Row, len(ExpectedColumns))
	for i, col := range ExpectedColumns {
		row[i] = values[col]
	}
	return row
}

func admissionTable(rows ...table.Row) *table.Table {
	return table.New(ExpectedColumns, rows)
}

func TestTransform(t *testing.T) {
	testtype.SkipUnlessTestType(t, testtype.UnitTestType)

	t.Run("typed nested document", func(t *testing.T) {
		row := admissionRow(nil)
		doc, err := Transform(admissionTable(row), row, 1)
		require.NoError(t, err)

		assert.Equal(t, Admission{
			Patient:       Patient{Name: "Bobby JacksOn", Age: 34, Gender: "Male", BloodType: "B-"},
			Medical:       Medical{Condition: "Cancer", Medication: "Paracetamol", TestResults: "Normal"},
			Facility:      Facility{Doctor: "Matthew Smith", Hospital: "Sons and Miller", InsuranceProvider: "Blue Cross", RoomNumber: 201},
			Stay:          Stay{AdmissionDate: "2024-01-31", DischargeDate: "2024-02-02", AdmissionType: "Urgent"},
			BillingAmount: 1234.56,
		}, doc)
	})

	t.Run("columns are looked up by name", func(t *testing.T) {
		header := append([]string{"Extra"}, ExpectedColumns...)
		row := append(table.Row{"ignored"}, admissionRow(nil)...)
		doc, err := Transform(table.New(header, []table.Row{row}), row, 1)
		require.NoError(t, err)
		assert.Equal(t, int32(34), doc.Patient.Age)
		assert.Equal(t, "Normal", doc.Medical.TestResults)
	})

	t.Run("numeric cells are trimmed and integral decimals accepted", func(t *testing.T) {
		row := admissionRow(map[string]string{
			colAge:           " 34.0 ",
			colRoomNumber:    "201\t",
			colBillingAmount: " -12.5",
		})
		doc, err := Transform(admissionTable(row), row, 1)
		require.NoError(t, err)
		assert.Equal(t, int32(34), doc.Patient.Age)
		assert.Equal(t, int32(201), doc.Facility.RoomNumber)
		assert.Equal(t, -12.5, doc.BillingAmount)
	})

	t.Run("text cells are kept verbatim", func(t *testing.T) {
		row := admissionRow(map[string]string{colName: " Leslie  Terry ", colAdmissionDate: "20/08/2019"})
		doc, err := Transform(admissionTable(row), row, 1)
		require.NoError(t, err)
		assert.Equal(t, " Leslie  Terry ", doc.Patient.Name)
		assert.Equal(t, "20/08/2019", doc.Stay.AdmissionDate)
	})

	badCells := []struct {
		column string
		value  string
	}{
		{colAge, "thirty"},
		{colAge, ""},
		{colAge, "34.5"},
		{colAge, "3000000000"},
		{colRoomNumber, "1e12"},
		{colRoomNumber, "A12"},
		{colBillingAmount, "$1,234"},
		{colBillingAmount, "NaN"},
		{colBillingAmount, " "},
	}
	for _, bc := range badCells {
		t.Run("rejects "+bc.column+" "+bc.value, func(t *testing.T) {
			row := admissionRow(map[string]string{bc.column: bc.value})
			_, err := Transform(admissionTable(row), row, 7)

			var convErr *TypeConversionError
			require.ErrorAs(t, err, &convErr)
			assert.Equal(t, 7, convErr.Row)
			assert.Equal(t, bc.column, convErr.Column)
			assert.Equal(t, bc.value, convErr.Value)
		})
	}
}

func TestTransformAll(t *testing.T) {
	testtype.SkipUnlessTestType(t, testtype.UnitTestType)

	tbl := admissionTable(
		admissionRow(nil),
		admissionRow(map[string]string{colName: "Leslie Terry"}),
		admissionRow(map[string]string{colRoomNumber: "twelve"}),
	)
	_, err := TransformAll(tbl)
	var convErr *TypeConversionError
	require.ErrorAs(t, err, &convErr)
	assert.Equal(t, 3, convErr.Row)

	docs, err := TransformAll(admissionTable(tbl.Rows[:2]...))
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "Leslie Terry", docs[1].Patient.Name)
}

func TestAdmissionBSONLayout(t *testing.T) {
	testtype.SkipUnlessTestType(t, testtype.UnitTestType)

	row := admissionRow(nil)
	doc, err := Transform(admissionTable(row), row, 1)
	require.NoError(t, err)

	raw, err := bson.Marshal(doc)
	require.NoError(t, err)

	var decoded bson.D
	require.NoError(t, bson.Unmarshal(raw, &decoded))
	keys := make([]string, 0, len(decoded))
	for _, elem := range decoded {
		keys = append(keys, elem.Key)
	}
	assert.Equal(t, []string{"patient", "medical", "facility", "stay", "billing_amount"}, keys)

	age := bson.Raw(raw).Lookup("patient", "age")
	assert.Equal(t, bson.TypeInt32, age.Type)
	room := bson.Raw(raw).Lookup("facility", "room_number")
	assert.Equal(t, bson.TypeInt32, room.Type)
	billing := bson.Raw(raw).Lookup("billing_amount")
	assert.Equal(t, bson.TypeDouble, billing.Type)
	assert.Equal(t, "Cancer", bson.Raw(raw).Lookup("medical", "condition").StringValue())
}
