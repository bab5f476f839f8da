package main

import (
	"text/tabwriter"

	"github.com/codewithmesree/saiu-learnflow/core/user"
)

func (cli *commandLine) listUsers(filter user.QueryFilter) error {
	users, err := cli.usrSvc.Filter(filter)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
	_, _ = w.Write([]byte("ID\tROLE\tNAME\tEMAIL\tDEPARTMENT\n"))
	for _, u := range users {
		_, _ = w.Write([]byte(u.ID + "\t" + u.Role + "\t" + u.Name + "\t" + u.Email + "\t" + u.Department + "\n"))
	}
	return w.Flush()
}
