// Copyright © 2024 The ansible-powerflex authors

package powerflex

// Sdc is a storage data client registered with the PowerFlex system. NVMe
// hosts live in the same instance collection and are distinguished by
// HostType == "NVMeHost"; the NQN and path-limit fields are only populated
// for them.
type Sdc struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	SystemID           string   `json:"systemId,omitempty"`
	SdcIP              string   `json:"sdcIp,omitempty"`
	SdcIPs             []string `json:"sdcIps,omitempty"`
	SdcGUID            string   `json:"sdcGuid,omitempty"`
	SdcApproved        *bool    `json:"sdcApproved,omitempty"`
	SdcApprovedIPs     []string `json:"sdcApprovedIps,omitempty"`
	OsType             string   `json:"osType,omitempty"`
	HostOsFullType     string   `json:"hostOsFullType,omitempty"`
	HostType           string   `json:"hostType,omitempty"`
	SdcType            string   `json:"sdcType,omitempty"`
	NQN                string   `json:"nqn,omitempty"`
	MaxNumPaths        int      `json:"maxNumPaths,omitempty"`
	MaxNumSysPorts     int      `json:"maxNumSysPorts,omitempty"`
	MdmConnectionState string   `json:"mdmConnectionState,omitempty"`
	PerfProfile        string   `json:"perfProfile,omitempty"`
	KernelVersion      string   `json:"kernelVersion,omitempty"`
	KernelBuildNumber  string   `json:"kernelBuildNumber,omitempty"`
	VersionInfo        string   `json:"versionInfo,omitempty"`
}

// IsNvmeHost reports whether the record is an NVMe host rather than a
// classic SDC.
func (s Sdc) IsNvmeHost() bool {
	return s.HostType == "NVMeHost"
}

// Volume is a volume mapped to an SDC.
type Volume struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	VolumeType string `json:"volumeType,omitempty"`
	SizeInKb   int64  `json:"sizeInKb,omitempty"`
	VTreeID    string `json:"vtreeId,omitempty"`
}

// CreateHostParams are the attributes accepted by the NVMe host create call.
// MaxNumPaths and MaxNumSysPorts are passed through as strings, matching the
// gateway's action payload.
type CreateHostParams struct {
	NQN            string `json:"nqn"`
	Name           string `json:"name,omitempty"`
	MaxNumPaths    string `json:"maxNumPaths,omitempty"`
	MaxNumSysPorts string `json:"maxNumSysPorts,omitempty"`
}
