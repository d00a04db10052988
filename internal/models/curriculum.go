package models

// curriculum maps board -> grade -> subject -> chapters. Question creation
// rejects chapters outside this map for the selected board, grade and subject.
var curriculum = map[string]map[string]map[string][]string{
	"ncert": {
		"9": {
			"maths": {
				"Number Systems", "Polynomials", "Coordinate Geometry",
				"Linear Equations in Two Variables", "Lines and Angles",
				"Triangles", "Quadrilaterals", "Circles", "Constructions",
				"Heron's Formula", "Surface Areas and Volumes", "Statistics",
				"Probability",
			},
			"science": {
				"Matter in Our Surroundings", "Is Matter Around Us Pure",
				"Atoms and Molecules", "Structure of the Atom",
				"The Fundamental Unit of Life", "Tissues", "Motion",
				"Force and Laws of Motion", "Gravitation", "Work and Energy",
				"Sound", "Natural Resources",
			},
			"social science": {
				"The French Revolution",
				"Socialism in Europe and the Russian Revolution",
				"Nazism and the Rise of Hitler",
				"Forest Society and Colonialism",
				"Pastoralists in the Modern World",
			},
		},
		"10": {
			"maths": {
				"Real Numbers", "Polynomials",
				"Pair of Linear Equations in Two Variables",
				"Quadratic Equations", "Arithmetic Progressions", "Triangles",
				"Coordinate Geometry", "Introduction to Trigonometry",
				"Applications of Trigonometry", "Circles",
				"Areas Related to Circles", "Surface Areas and Volumes",
				"Statistics", "Probability",
			},
			"science": {
				"Chemical Reactions and Equations", "Acids, Bases, and Salts",
				"Metals and Non-metals", "Carbon and its Compounds",
				"Life Processes", "Control and Coordination",
				"Heredity and Evolution", "Light: Reflection and Refraction",
				"Electricity", "Magnetic Effects of Electric Current",
				"Our Environment",
			},
			"social science": {
				"The Rise of Nationalism in Europe", "Nationalism in India",
				"The Making of a Global World", "The Age of Industrialisation",
				"Print Culture and the Modern World",
			},
		},
	},
	"icse": {
		"9": {
			"maths": {
				"Rational and Irrational Numbers", "Compound Interest",
				"Expansions", "Factorization", "Simultaneous Linear Equations",
				"Indices", "Logarithms", "Mid-point Theorem",
				"Pythagoras Theorem", "Coordinate Geometry", "Mensuration",
				"Trigonometry", "Statistics",
			},
			"science": {
				"Plant and Animal Physiology", "Diversity in Living Organisms",
				"Health and Hygiene", "Acids, Bases, and Salts",
				"Atoms and Molecules", "Structure of the Atom",
				"Chemical Reactions", "Motion and Measurement",
				"Work, Energy, and Power", "Sound", "Light",
			},
			"social science": {
				"The Harappan Civilization", "The Vedic Period",
				"The Mauryan Empire", "The Gupta Empire", "Medieval India",
				"The Mughal Empire", "Modern India",
			},
		},
		"10": {
			"maths": {
				"Goods and Services Tax", "Banking", "Linear Inequations",
				"Quadratic Equations", "Ratio and Proportion", "Matrices",
				"Arithmetic Progression", "Geometric Progression",
				"Mensuration", "Trigonometry", "Coordinate Geometry",
				"Statistics", "Probability",
			},
			"science": {
				"Chemical Substances - Nature and Behaviour", "World of Living",
				"Natural Phenomena", "Effects of Current", "Natural Resources",
			},
			"social science": {
				"The First War of Independence", "Growth of Nationalism",
				"The First World War and the Russian Revolution",
				"The Second World War", "Post-War World and India",
			},
		},
	},
}

// ValidBoard reports whether the board is part of the supported curriculum.
func ValidBoard(board string) bool {
	_, ok := curriculum[board]
	return ok
}

// ValidChapter reports whether the chapter belongs to the given board, grade
// and subject.
func ValidChapter(board, grade, subject, chapter string) bool {
	grades, ok := curriculum[board]
	if !ok {
		return false
	}
	subjects, ok := grades[grade]
	if !ok {
		return false
	}
	chapters, ok := subjects[subject]
	if !ok {
		return false
	}
	for _, c := range chapters {
		if c == chapter {
			return true
		}
	}
	return false
}

// Subjects returns the subjects available for a board and grade.
func Subjects(board, grade string) []string {
	grades, ok := curriculum[board]
	if !ok {
		return nil
	}
	subjects, ok := grades[grade]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(subjects))
	for name := range subjects {
		names = append(names, name)
	}
	return names
}
