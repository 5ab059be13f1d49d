// Package base holds the RFC 6733 base protocol constants and builders for
// the peer-level commands.
package base

// Command codes.
const (
	CodeCapabilitiesExchange uint32 = 257
	CodeReAuth               uint32 = 258
	CodeAccounting           uint32 = 271
	CodeCreditControl        uint32 = 272
	CodeAbortSession         uint32 = 274
	CodeSessionTermination   uint32 = 275
	CodeDeviceWatchdog       uint32 = 280
	CodeDisconnectPeer       uint32 = 282
)

// Application identifiers.
const (
	AppCommon             uint32 = 0
	AppNASREQ             uint32 = 1
	AppMobileIPv4         uint32 = 2
	AppAccounting         uint32 = 3
	AppCreditControl      uint32 = 4
	AppEAP                uint32 = 5
	AppSIP                uint32 = 6
	AppQoS                uint32 = 9
	AppCapabilitiesUpdate uint32 = 10
	AppTGPPCx             uint32 = 16777216
	AppTGPPSh             uint32 = 16777217
	AppTGPPGx             uint32 = 16777238
	AppTGPPS6a            uint32 = 16777251
	AppTGPPS13            uint32 = 16777252
	AppTGPPSWx            uint32 = 16777265
	AppTGPPS6c            uint32 = 16777312
	AppRelay              uint32 = 0xffffffff
)

// VendorTGPP is the 3GPP vendor id.
const VendorTGPP uint32 = 10415

// AVP codes used by the base protocol.
const (
	AVPEventTimestamp              uint32 = 55
	AVPHostIPAddress               uint32 = 257
	AVPAuthApplicationID           uint32 = 258
	AVPAcctApplicationID           uint32 = 259
	AVPVendorSpecificApplicationID uint32 = 260
	AVPRedirectHostUsage           uint32 = 261
	AVPRedirectMaxCacheTime        uint32 = 262
	AVPSessionID                   uint32 = 263
	AVPOriginHost                  uint32 = 264
	AVPSupportedVendorID           uint32 = 265
	AVPVendorID                    uint32 = 266
	AVPFirmwareRevision            uint32 = 267
	AVPResultCode                  uint32 = 268
	AVPProductName                 uint32 = 269
	AVPDisconnectCause             uint32 = 273
	AVPAuthSessionState            uint32 = 277
	AVPOriginStateID               uint32 = 278
	AVPFailedAVP                   uint32 = 279
	AVPProxyHost                   uint32 = 280
	AVPErrorMessage                uint32 = 281
	AVPRouteRecord                 uint32 = 282
	AVPDestinationRealm            uint32 = 283
	AVPProxyInfo                   uint32 = 284
	AVPDestinationHost             uint32 = 293
	AVPErrorReportingHost          uint32 = 294
	AVPTerminationCause            uint32 = 295
	AVPOriginRealm                 uint32 = 296
	AVPExperimentalResult          uint32 = 297
	AVPExperimentalResultCode      uint32 = 298
	AVPInbandSecurityID            uint32 = 299
)

// DisconnectCause values carried in a DPR.
type DisconnectCause int32

const (
	DisconnectRebooting            DisconnectCause = 0
	DisconnectBusy                 DisconnectCause = 1
	DisconnectDoNotWantToTalkToYou DisconnectCause = 2
)

func (c DisconnectCause) String() string {
	switch c {
	case DisconnectRebooting:
		return "REBOOTING"
	case DisconnectBusy:
		return "BUSY"
	case DisconnectDoNotWantToTalkToYou:
		return "DO_NOT_WANT_TO_TALK_TO_YOU"
	}
	return "UNKNOWN"
}
