// Copyright (C) MongoDB, Inc. 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package mongomigrate

import (
	"github.com/samber/lo"
)

// Source column names.
const (
	colName              = "Name"
	colAge               = "Age"
	colGender            = "Gender"
	colBloodType         = "Blood Type"
	colMedicalCondition  = "Medical Condition"
	colAdmissionDate     = "Date of Admission"
	colDoctor            = "Doctor"
	colHospital          = "Hospital"
	colInsuranceProvider = "Insurance Provider"
	colBillingAmount     = "Billing Amount"
	colRoomNumber        = "Room Number"
	colAdmissionType     = "Admission Type"
	colDischargeDate     = "Discharge Date"
	colMedication        = "Medication"
	colTestResults       = "Test Results"
)

// ExpectedColumns is the set of columns the source must provide. Names are
// matched exactly, including case and spacing.
var ExpectedColumns = []string{
	colName,
	colAge,
	colGender,
	colBloodType,
	colMedicalCondition,
	colAdmissionDate,
	colDoctor,
	colHospital,
	colInsuranceProvider,
	colBillingAmount,
	colRoomNumber,
	colAdmissionType,
	colDischargeDate,
	colMedication,
	colTestResults,
}

// ValidateColumns checks that header contains every column in expected.
// Extra columns are allowed. The returned *SchemaValidationError lists the
// missing names in the order of expected.
func ValidateColumns(header []string, expected []string) error {
	missing := lo.Without(expected, header...)
	if len(missing) > 0 {
		return &SchemaValidationError{Missing: missing}
	}
	return nil
}
