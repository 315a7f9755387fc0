package types

type Employee struct {
	ID           int64  `json:"id,omitempty"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Team         string `json:"team"`
	ManagerEmail string `json:"manager_email,omitempty"`
}

func (e Employee) Info() EmployeeInfo {
	return EmployeeInfo{ID: e.ID, Name: e.Name, Team: e.Team, ManagerEmail: e.ManagerEmail}
}

type EmployeeResponse struct {
	Success      bool     `json:"success"`
	Employee     Employee `json:"employee,omitempty"`
	ErrorMessage string   `json:"error,omitempty"`
}

type GetEmployeesResponse struct {
	Success   bool       `json:"success"`
	Employees []Employee `json:"employees"`
}
