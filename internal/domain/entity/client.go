package entity

import "time"

// Tipos de cliente.
const (
	ClientTypePatient    = "patient"
	ClientTypeDepartment = "department"
)

// Client es un paciente o un departamento que recibe insumos asignados.
// PatientID es obligatorio para pacientes y DepartmentID para departamentos.
type Client struct {
	ID            string
	Name          string
	Type          string
	ContactPerson string
	ContactNumber string
	Email         string
	PatientID     string
	DepartmentID  string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsValidClientType indica si t es un tipo de cliente soportado.
func IsValidClientType(t string) bool {
	return t == ClientTypePatient || t == ClientTypeDepartment
}

// Identifier retorna el identificador que corresponde al tipo de cliente.
func (c *Client) Identifier() string {
	if c.Type == ClientTypePatient {
		return c.PatientID
	}
	return c.DepartmentID
}

// ClientSnapshot es la copia del cliente guardada en una asignación.
type ClientSnapshot struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Type         string `json:"type"`
	PatientID    string `json:"patient_id,omitempty"`
	DepartmentID string `json:"department_id,omitempty"`
}

func (c *Client) Snapshot() ClientSnapshot {
	return ClientSnapshot{
		ID:           c.ID,
		Name:         c.Name,
		Type:         c.Type,
		PatientID:    c.PatientID,
		DepartmentID: c.DepartmentID,
	}
}
