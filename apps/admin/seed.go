package main

func (cli *commandLine) seed() error {
	created, err := cli.usrSvc.SeedDemoUsers()
	for _, usr := range created {
		cli.printf("created %s %s <%s>\n", usr.Role, usr.Name, usr.Email)
	}
	if err != nil {
		return err
	}
	if len(created) == 0 {
		cli.printf("demo users already exist\n")
	}
	return nil
}
