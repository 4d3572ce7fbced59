// Copyright © 2024 The ansible-powerflex authors

package main

import (
	"fmt"
	"os"

	"github.com/P-Cao/ansible-powerflex/cli"
)

/*
pfxctl <resource> <command> <arguments>

For Eg:
pfxctl sdc get --sdc-ip 10.1.1.10
pfxctl sdc apply --sdc-name centos_sdc --new-name centos_sdc_renamed
pfxctl nvme-host apply --nqn nqn.2014-08.org.nvmexpress:uuid:... --name host1 --max-num-paths 4
pfxctl nvme-host apply --id da8f60fd00010000 --state absent
pfxctl apply -f tasks.yaml
*/
func main() {
	if err := cli.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
