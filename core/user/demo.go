package user

// DemoUsers are the accounts offered on the demo login screen.
var DemoUsers = []NewUser{
	{Email: "prof@learnflow.com", Password: "prof123", Role: RoleProfessor, Name: "Dr. Sarah Wilson", Department: "School of Computing and Data Science"},
	{Email: "prof2@learnflow.com", Password: "prof123", Role: RoleProfessor, Name: "Dr. Michael Chen", Department: "School of AI"},
	{Email: "prof3@learnflow.com", Password: "prof123", Role: RoleProfessor, Name: "Dr. Emily Rodriguez", Department: "School of Business"},
	{Email: "student@learnflow.com", Password: "student123", Role: RoleStudent, Name: "John Doe", Department: "School of Computing and Data Science"},
	{Email: "student2@learnflow.com", Password: "student123", Role: RoleStudent, Name: "Emily Johnson", Department: "School of Arts and Sciences"},
	{Email: "student3@learnflow.com", Password: "student123", Role: RoleStudent, Name: "Michael Brown", Department: "School of Law"},
}

// SeedDemoUsers creates the DemoUsers that do not exist yet and returns them.
func (svc *Service) SeedDemoUsers() ([]User, error) {
	created := make([]User, 0, len(DemoUsers))
	for _, nu := range DemoUsers {
		taken, err := svc.IsEmailTaken(nu.Email)
		if err != nil {
			return created, err
		}
		if taken {
			continue
		}
		usr, err := svc.Create(nu)
		if err != nil {
			return created, err
		}
		created = append(created, usr)
	}
	return created, nil
}
