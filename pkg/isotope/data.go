package isotope

// Nuclide holds one naturally occurring isotope of an element.
type Nuclide struct {
	MassNumber int
	Mass       float64 // atomic mass units
	Abundance  float64 // natural abundance, fraction of 1
}

// nuclides lists natural isotopic compositions for the elements the
// reference engine supports. Masses are monoisotopic (CODATA/IUPAC values);
// abundances are IUPAC representative values.
var nuclides = map[string][]Nuclide{
	"H": {
		{1, 1.0078250319, 0.999885},
		{2, 2.0141017780, 0.000115},
	},
	"C": {
		{12, 12.0000000000, 0.9893},
		{13, 13.0033548378, 0.0107},
	},
	"N": {
		{14, 14.0030740052, 0.99636},
		{15, 15.0001088984, 0.00364},
	},
	"O": {
		{16, 15.9949146221, 0.99757},
		{17, 16.9991315000, 0.00038},
		{18, 17.9991604000, 0.00205},
	},
	"F": {
		{19, 18.9984031630, 1.0},
	},
	"Na": {
		{23, 22.9897692820, 1.0},
	},
	"Mg": {
		{24, 23.9850419000, 0.7899},
		{25, 24.9858370200, 0.1000},
		{26, 25.9825930400, 0.1101},
	},
	"Al": {
		{27, 26.9815384400, 1.0},
	},
	"Si": {
		{28, 27.9769265327, 0.92223},
		{29, 28.9764947200, 0.04685},
		{30, 29.9737702200, 0.03092},
	},
	"P": {
		{31, 30.9737615100, 1.0},
	},
	"S": {
		{32, 31.9720706900, 0.9499},
		{33, 32.9714585000, 0.0075},
		{34, 33.9678668300, 0.0425},
		{36, 35.9670808800, 0.0001},
	},
	"Cl": {
		{35, 34.9688527100, 0.7576},
		{37, 36.9659026000, 0.2424},
	},
	"K": {
		{39, 38.9637069000, 0.932581},
		{40, 39.9639986700, 0.000117},
		{41, 40.9618259700, 0.067302},
	},
	"Ca": {
		{40, 39.9625912000, 0.96941},
		{42, 41.9586183000, 0.00647},
		{43, 42.9587668000, 0.00135},
		{44, 43.9554811000, 0.02086},
		{46, 45.9536928000, 0.00004},
		{48, 47.9525340000, 0.00187},
	},
	"Fe": {
		{54, 53.9396148000, 0.05845},
		{56, 55.9349421000, 0.91754},
		{57, 56.9353987000, 0.02119},
		{58, 57.9332805000, 0.00282},
	},
	"Cu": {
		{63, 62.9296011000, 0.6917},
		{65, 64.9277937000, 0.3083},
	},
	"Zn": {
		{64, 63.9291466000, 0.4863},
		{66, 65.9260368000, 0.2790},
		{67, 66.9271309000, 0.0410},
		{68, 67.9248476000, 0.1875},
		{70, 69.9253250000, 0.0062},
	},
	"Se": {
		{74, 73.9224766000, 0.0089},
		{76, 75.9192141000, 0.0937},
		{77, 76.9199146000, 0.0763},
		{78, 77.9173095000, 0.2377},
		{80, 79.9165218000, 0.4961},
		{82, 81.9167000000, 0.0873},
	},
	"Br": {
		{79, 78.9183376000, 0.5069},
		{81, 80.9162906000, 0.4931},
	},
	"Ag": {
		{107, 106.9050930000, 0.51839},
		{109, 108.9047560000, 0.48161},
	},
	"I": {
		{127, 126.9044730000, 1.0},
	},
	"Li": {
		{6, 6.0151223000, 0.0759},
		{7, 7.0160040000, 0.9241},
	},
	"B": {
		{10, 10.0129370000, 0.199},
		{11, 11.0093055000, 0.801},
	},
}

// lookup returns the natural isotope list for an element.
func lookup(element string) ([]Nuclide, bool) {
	ns, ok := nuclides[element]
	return ns, ok
}

// labelNuclides lists isotopes usable in labels but absent from the natural
// abundance tables (abundance effectively zero in nature).
var labelNuclides = map[string][]Nuclide{
	"H": {
		{3, 3.0160492779, 0},
	},
}

// lookupFixed returns the single nuclide with the given mass number,
// consulting the natural tables first and the label-only table second.
func lookupFixed(element string, massNumber int) (Nuclide, bool) {
	for _, n := range nuclides[element] {
		if n.MassNumber == massNumber {
			return n, true
		}
	}
	for _, n := range labelNuclides[element] {
		if n.MassNumber == massNumber {
			return n, true
		}
	}
	return Nuclide{}, false
}
