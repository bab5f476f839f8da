package main

func (cli *commandLine) clearData() error {
	if err := cli.usrSvc.ClearAllData(); err != nil {
		return err
	}
	cli.printf("all users and sessions deleted; the default admin is recreated on next use\n")
	return nil
}
