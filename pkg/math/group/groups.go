package group

import "sync"

// Hex moduli for the predefined groups. All are safe primes; 4 = 2² and
// 9 = 3² are quadratic residues and therefore generate the order-q
// subgroup.
const (
	modp3072Hex = "B7E151628AED2A6ABF7158809CF4F3C762E7160F38B4DA56A784D9045190CFEF324E7738926CFBE5F4BF8D8D8C31D763DA06C80ABB1185EB4F7C7B5757F5958490CFD47D7C19BB42158D9554F7B46BCED55C4D79FD5F24D6613C31C3839A2DDF8A9A276BCFBFA1C877C56284DAB79CD4C2B3293D20E9E5EAF02AC60ACC93ED874422A52ECB238FEEE5AB6ADD835FD1A0753D0A8F78E537D2B95BB79D8DCAEC642C1E9F23B829B5C2780BF38737DF8BB300D01334A0D0BD8645CBFA73A6160FFE393C48CBBBCA060F0FF8EC6D31BEB5CCEED7F2F0BB088017163BC60DF45A0ECB1BCD289B06CBBFEA21AD08E1847F3F7378D56CED94640D6EF0D3D37BE67008E186D1BF275B9B241DEB64749A47DFDFB96632C3EB061B6472BBF84C26144E49C2D04C324EF10DE513D3F5114B8B5D374D93CB8879C7D52FFD72BA0AAE7277DA7BA1B4AF1488D8E836AF14865E6C37AB6876FE690B571121382AF341AFE94F77BCF06C83B8FF5675F0979074AD9A787BC5B9BD4B0C5937D3EDE4C3A79396419CD7"

	modp1024Hex = "B7E151628AED2A6ABF7158809CF4F3C762E7160F38B4DA56A784D9045190CFEF324E7738926CFBE5F4BF8D8D8C31D763DA06C80ABB1185EB4F7C7B5757F5958490CFD47D7C19BB42158D9554F7B46BCED55C4D79FD5F24D6613C31C3839A2DDF8A9A276BCFBFA1C877C56284DAB79CD4C2B3293D20E9E5EAF02AC60ACC942593"

	insecure48Hex = "B7E151629927"
)

var (
	modp3072Once, modp1024Once, insecure48Once sync.Once
	modp3072, modp1024, insecure48             *Group
)

func mustNew(name, pHex string) *Group {
	g, err := New(name, pHex, "4", "9")
	if err != nil {
		panic("group: bad built-in parameters: " + err.Error())
	}
	return g
}

// MODP3072 returns the 3072-bit production group.
func MODP3072() *Group {
	modp3072Once.Do(func() { modp3072 = mustNew("modp3072", modp3072Hex) })
	return modp3072
}

// MODP1024 returns the legacy 1024-bit group. Prefer MODP3072 for new
// deployments.
func MODP1024() *Group {
	modp1024Once.Do(func() { modp1024 = mustNew("modp1024", modp1024Hex) })
	return modp1024
}

// Insecure48 returns a 48-bit group. It offers no security whatsoever and
// exists so tests can run orders of magnitude faster than with a real
// modulus.
func Insecure48() *Group {
	insecure48Once.Do(func() { insecure48 = mustNew("insecure48", insecure48Hex) })
	return insecure48
}
