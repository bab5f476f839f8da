package main

import (
	"github.com/codewithmesree/saiu-learnflow/core/user"
)

func (cli *commandLine) addUser(email, name, role, dept, pwd string) error {
	nu := user.NewUser{
		Email:      email,
		Password:   pwd,
		Role:       role,
		Name:       name,
		Department: dept,
	}
	if err := nu.Validate(cli.validate); err != nil {
		return err
	}
	usr, err := cli.usrSvc.Create(nu)
	if err != nil {
		return err
	}
	cli.printf("created %s %s <%s> (id %s)\n", usr.Role, usr.Name, usr.Email, usr.ID)
	return nil
}
