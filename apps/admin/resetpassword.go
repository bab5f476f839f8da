package main

import (
	"github.com/codewithmesree/saiu-learnflow/core/user"
)

func (cli *commandLine) resetPassword(email, pwd string) error {
	usr, err := cli.usrSvc.GetByEmail(email)
	if err != nil {
		return err
	}
	_, err = cli.usrSvc.Update(usr.ID, user.UpdateUser{Password: &pwd})
	return err
}
