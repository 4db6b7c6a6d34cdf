package models

import (
	"testing"
)

func f(v float64) *float64 { return &v }

func TestVitalSignsBMI(t *testing.T) {
	tests := []struct {
		name   string
		vitals *VitalSigns
		want   *float64
	}{
		{"both present", &VitalSigns{WeightKg: f(80), HeightCm: f(180)}, f(24.7)},
		{"rounding", &VitalSigns{WeightKg: f(70), HeightCm: f(170)}, f(24.2)},
		{"missing weight", &VitalSigns{HeightCm: f(180)}, nil},
		{"missing height", &VitalSigns{WeightKg: f(80)}, nil},
		{"zero height", &VitalSigns{WeightKg: f(80), HeightCm: f(0)}, nil},
		{"nil receiver", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.vitals.BMI()
			switch {
			case got == nil && tt.want == nil:
			case got == nil || tt.want == nil:
				t.Errorf("BMI() = %v, want %v", got, tt.want)
			case *got != *tt.want:
				t.Errorf("BMI() = %v, want %v", *got, *tt.want)
			}
		})
	}
}

func TestVisitDetailDerivesBMIWithoutStoringIt(t *testing.T) {
	visit := Visit{
		PatientID: "p1",
		Motive:    "Control",
	}
	if got := visit.Detail(); got.Vitals != nil {
		t.Errorf("detail vitals = %+v, want nil when no vitals recorded", got.Vitals)
	}
}
